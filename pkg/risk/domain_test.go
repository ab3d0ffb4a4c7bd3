package risk

import (
	"context"
	"testing"

	"github.com/mailsift/mailsift/pkg/email"
	"github.com/mailsift/mailsift/pkg/refdata"
)

func fallbackClassifier() *DomainClassifier {
	return NewDomainClassifier(refdata.New(refdata.DefaultConfig(), nil))
}

func TestClassifyDisposableDomain(t *testing.T) {
	c := fallbackClassifier()
	out := c.Classify(context.Background(), email.Parse("test@tempmail.com"))

	if !out.Disposable {
		t.Fatal("tempmail.com should be in the disposable set")
	}
	if !out.PatternMatch {
		t.Error("tempmail.com should match the temp-mail pattern")
	}
	if out.ReputationScore != 1.0 {
		t.Errorf("reputation = %.2f, want capped 1.0", out.ReputationScore)
	}
	if out.Reason != "disposable_domain" {
		t.Errorf("reason = %q", out.Reason)
	}
}

func TestClassifyFreeProvider(t *testing.T) {
	c := fallbackClassifier()
	out := c.Classify(context.Background(), email.Parse("john@gmail.com"))

	if !out.FreeProvider {
		t.Fatal("gmail.com should be a free provider")
	}
	if out.Disposable {
		t.Error("gmail.com is not disposable")
	}
	if out.ReputationScore != 0 {
		t.Errorf("reputation = %.2f, want 0", out.ReputationScore)
	}
}

func TestClassifyCorporateDomain(t *testing.T) {
	c := fallbackClassifier()
	out := c.Classify(context.Background(), email.Parse("jane@acme-widgets.com"))

	if out.Disposable || out.FreeProvider || out.PatternMatch {
		t.Error("plain corporate domain should carry no list flags")
	}
	if out.ReputationScore != 0 {
		t.Errorf("reputation = %.2f, want 0", out.ReputationScore)
	}
	if !out.HasValidTLD {
		t.Error("com should be a valid TLD")
	}
}

func TestClassifyTLDRisk(t *testing.T) {
	c := fallbackClassifier()

	com := c.Classify(context.Background(), email.Parse("a@example.com"))
	tk := c.Classify(context.Background(), email.Parse("a@example.tk"))
	edu := c.Classify(context.Background(), email.Parse("a@university.edu"))

	if tk.TLDRiskScore != 1.0 {
		t.Errorf("tk risk = %.3f, want 1.0", tk.TLDRiskScore)
	}
	if edu.TLDRiskScore != 0 {
		t.Errorf("edu risk = %.3f, want 0", edu.TLDRiskScore)
	}
	if !(edu.TLDRiskScore < com.TLDRiskScore && com.TLDRiskScore < tk.TLDRiskScore) {
		t.Errorf("risk ordering broken: edu=%.3f com=%.3f tk=%.3f",
			edu.TLDRiskScore, com.TLDRiskScore, tk.TLDRiskScore)
	}
}

func TestDomainHeuristics(t *testing.T) {
	tests := []struct {
		domain string
		want   []string
	}{
		{"example.com", nil},
		{"xy", []string{"too_short"}},
		{"a-b-c-d-e.com", []string{"excessive_hyphens"}},
		{"mail.123.example.com", []string{"numeric_label"}},
		{"xzvbnqw.com", []string{"consonant_label"}},
		{"a.b.c.d.e.com", []string{"deep_nesting"}},
	}
	for _, tt := range tests {
		got := domainHeuristics(tt.domain)
		if len(got) != len(tt.want) {
			t.Errorf("domainHeuristics(%q) = %v, want %v", tt.domain, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("domainHeuristics(%q)[%d] = %q, want %q", tt.domain, i, got[i], tt.want[i])
			}
		}
	}
}

func TestClassifySubdomainDepthPenalty(t *testing.T) {
	c := fallbackClassifier()
	flat := c.Classify(context.Background(), email.Parse("a@example.com"))
	deep := c.Classify(context.Background(), email.Parse("a@x.y.z.example.com"))

	if deep.SubdomainDepth <= flat.SubdomainDepth {
		t.Fatalf("depth not tracked: %d <= %d", deep.SubdomainDepth, flat.SubdomainDepth)
	}
	if deep.ReputationScore <= flat.ReputationScore {
		t.Errorf("deep nesting should cost reputation: %.2f <= %.2f",
			deep.ReputationScore, flat.ReputationScore)
	}
}
