package extract

import (
	"testing"

	"github.com/spigell/resume-screener/internal/candidate"
)

const sampleResume = `Curriculum Vitae
Name: Jane Doe
Email: jane.doe@example.com
Phone: +1 555-123-4567

Education
Master of Science in Computer Science, 2018
Bachelor of Engineering, 2016

Experience
Senior Engineer at Google, Jan 2020 - Present
Role: Data Analyst at Shopify from March 2017 to Dec 2019
`

func TestExtract(t *testing.T) {
	t.Parallel()

	got := Extract(sampleResume)

	if got.Name != "Jane Doe" {
		t.Fatalf("expected name Jane Doe, got %q", got.Name)
	}
	if got.Email != "jane.doe@example.com" {
		t.Fatalf("unexpected email %q", got.Email)
	}
	if got.Phone != "+1 555-123-4567" {
		t.Fatalf("unexpected phone %q", got.Phone)
	}
	if got.EducationLevel != candidate.EducationMasters {
		t.Fatalf("expected Master's, got %q", got.EducationLevel)
	}

	expectExperience := "Senior Engineer at Google (Jan 2020 - Present); Data Analyst at Shopify (March 2017 - Dec 2019)"
	if got.Experience != expectExperience {
		t.Fatalf("unexpected experience:\n got: %q\nwant: %q", got.Experience, expectExperience)
	}
	if got.Skills == nil || len(got.Skills) != 0 {
		t.Fatalf("expected empty non-nil skills, got %v", got.Skills)
	}
}

func TestExtractEmptyInput(t *testing.T) {
	t.Parallel()

	got := Extract("")
	want := candidate.Empty()

	if got.Name != want.Name || got.Email != want.Email || got.Phone != want.Phone ||
		got.EducationLevel != want.EducationLevel || got.Experience != want.Experience {
		t.Fatalf("expected sentinel profile, got %+v", got)
	}
}

func TestName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		strategy NameStrategy
		expect   string
	}{
		{name: "label", text: "name - John Smith\nEmail: js@x.io", strategy: NameLabeledOrCapitalized, expect: "John Smith"},
		{name: "label stays on one line", text: "Name: John Smith\nEmail Address", strategy: NameLabeledOrCapitalized, expect: "John Smith"},
		{name: "capitalised line fallback", text: "resume\n  Alice Marie Cooper  \nalice@x.io", strategy: NameLabeledOrCapitalized, expect: "Alice Marie Cooper"},
		{name: "single word is not a name", text: "Resume\nsummary", strategy: NameLabeledOrCapitalized, expect: candidate.UnknownName},
		{name: "first line", text: "\n\n  J. R. Tolkien, MA \nmore", strategy: NameFirstLine, expect: "J. R. Tolkien, MA"},
		{name: "first line of blank text", text: " \n\t\n", strategy: NameFirstLine, expect: candidate.UnknownName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Name(tt.text, tt.strategy); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text   string
		expect string
	}{
		{text: "", expect: candidate.NotFound},
		{text: "no contact here", expect: candidate.NotFound},
		{text: "mail me: first.last-1@sub.example.co.uk.", expect: "first.last-1@sub.example.co.uk"},
		{text: "a@b.io and c@d.io", expect: "a@b.io"},
	}

	for _, tt := range tests {
		if got := Email(tt.text); got != tt.expect {
			t.Fatalf("Email(%q): expected %q, got %q", tt.text, tt.expect, got)
		}
	}
}

func TestPhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		expect string
	}{
		{name: "none", text: "call me maybe", expect: candidate.NotFound},
		{name: "plain digits", text: "Tel 0123456789", expect: "0123456789"},
		{name: "grouped", text: "Phone: +44 20 7946 0958 (work)", expect: "+44 20 7946 0958"},
		{name: "year range is not a phone", text: "2019 - 2021\nPhone: 555-867-5309-1", expect: "555-867-5309-1"},
		{name: "too few digits", text: "ID 123-456-789", expect: candidate.NotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Phone(tt.text); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestEducationPriority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		expect string
	}{
		{name: "nothing", text: "self taught", expect: candidate.NotFound},
		{name: "phd beats bachelor", text: "B.Sc. Physics; Ph.D. in Physics", expect: candidate.EducationPhD},
		{name: "doctor of philosophy", text: "Doctor of Philosophy, MIT", expect: candidate.EducationPhD},
		{name: "master beats bachelor", text: "Bachelor of Arts\nMaster of Business Administration", expect: candidate.EducationMasters},
		{name: "bachelor beats diploma", text: "Diploma in Nursing, Bachelor's degree in Biology", expect: candidate.EducationBachelors},
		{name: "diploma beats high school", text: "High School graduate, Diploma", expect: candidate.EducationDiploma},
		{name: "high school", text: "secondary school certificate", expect: candidate.EducationHighSchool},
		{name: "msc abbreviation", text: "MSc Data Science", expect: candidate.EducationMasters},
		{name: "state code reads as master's", text: "123 Main St, Boston, MA 02139", expect: candidate.EducationMasters},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Education(tt.text); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestEducationEveryOrderedPair(t *testing.T) {
	t.Parallel()

	phrases := map[string]string{
		candidate.EducationPhD:        "Ph.D. in Physics",
		candidate.EducationMasters:    "Master of Science in Biology",
		candidate.EducationBachelors:  "Bachelor of Arts in History",
		candidate.EducationDiploma:    "Diploma in Nursing",
		candidate.EducationHighSchool: "High School graduate",
	}

	for i, first := range candidate.EducationLevels {
		if got := Education(phrases[first]); got != first {
			t.Fatalf("expected %q alone to read as %q, got %q", phrases[first], first, got)
		}
		for j, second := range candidate.EducationLevels {
			if i == j {
				continue
			}
			expect := candidate.EducationLevels[min(i, j)]
			text := phrases[first] + "\n" + phrases[second]
			if got := Education(text); got != expect {
				t.Fatalf("%s then %s: expected %q, got %q", first, second, expect, got)
			}
		}
	}
}

func TestExperience(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		expect string
	}{
		{name: "none", text: "I like hiking", expect: candidate.NotFound},
		{name: "no dates", text: "Backend Developer at Stripe", expect: "Backend Developer at Stripe (? - ?)"},
		{name: "only start date", text: "- Intern at Acme Corp, June 2015", expect: "Intern at Acme Corp (June 2015 - ?)"},
		{name: "years", text: "Title: Lead at Initech 2010 to 2014", expect: "Lead at Initech (2010 - 2014)"},
		{name: "lowercase role is skipped", text: "good at Python", expect: candidate.NotFound},
		{
			name:   "semicolon segments",
			text:   "Engineer at Umbrella (Feb 2001 - current); Manager at Hooli",
			expect: "Engineer at Umbrella (Feb 2001 - Present); Manager at Hooli (? - ?)",
		},
		{
			name:   "several entries on one line",
			text:   "Engineer at Google, Manager at Meta",
			expect: "Engineer at Google (? - ?); Manager at Meta (? - ?)",
		},
		{
			name:   "dates stay with their own entry",
			text:   "Analyst at Acme Jan 2015 - Dec 2016, Lead at Initech 2017 to Present",
			expect: "Analyst at Acme (Jan 2015 - Dec 2016); Lead at Initech (2017 - Present)",
		},
		{
			name:   "lowercase clause after comma is not an entry",
			text:   "Engineer at Google, built systems at scale",
			expect: "Engineer at Google (? - ?)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Experience(tt.text); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestExperienceRoundTrip(t *testing.T) {
	t.Parallel()

	first := Experience(sampleResume)
	if again := Experience(first); again != first {
		t.Fatalf("rendered experience should parse back to itself:\n got: %q\nwant: %q", again, first)
	}
}

func TestParseNameStrategy(t *testing.T) {
	t.Parallel()

	if s, ok := ParseNameStrategy("FIRST-LINE"); !ok || s != NameFirstLine {
		t.Fatalf("expected first-line strategy, got %q (%v)", s, ok)
	}
	if s, ok := ParseNameStrategy(""); !ok || s != NameLabeledOrCapitalized {
		t.Fatalf("expected default strategy, got %q (%v)", s, ok)
	}
	if _, ok := ParseNameStrategy("magic"); ok {
		t.Fatalf("expected unknown strategy to be rejected")
	}
}
