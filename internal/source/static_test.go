package source

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"vouch/internal/model"
)

func TestStatic_ReturnsFixture(t *testing.T) {
	src := &Static{SourceName: "reviews", Evidence: model.Evidence{
		Reviews: &model.ReviewAnalysis{OverallRating: 4.2},
	}}

	ev, err := src.Fetch(context.Background(), Query{BusinessName: "Acme"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if ev.Source != "reviews" {
		t.Errorf("source = %q, want reviews", ev.Source)
	}
	if ev.Reviews == nil || ev.Reviews.OverallRating != 4.2 {
		t.Error("fixture payload not returned")
	}
}

func TestStatic_Error(t *testing.T) {
	src := &Static{SourceName: "registry", Err: errors.New("down")}
	if _, err := src.Fetch(context.Background(), Query{}); err == nil {
		t.Error("expected the configured error")
	}
}

func TestStatic_HonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := &Static{SourceName: "registry"}
	if _, err := src.Fetch(ctx, Query{}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestDemoSet_Deterministic(t *testing.T) {
	first := DemoSet("Acme Gas Plumbing Ltd", model.FormLimitedCompany)
	second := DemoSet("Acme Gas Plumbing Ltd", model.FormLimitedCompany)

	q := Query{BusinessName: "Acme Gas Plumbing Ltd", LegalForm: model.FormLimitedCompany}
	for name := range first {
		a, err := first[name].Fetch(context.Background(), q)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		b, err := second[name].Fetch(context.Background(), q)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%s: fixtures differ between identical builds", name)
		}
	}
}

func TestDemoSet_RegistryOnlyForRegisteredForms(t *testing.T) {
	registered := DemoSet("Acme Ltd", model.FormLimitedCompany)
	if _, ok := registered[NameRegistry]; !ok {
		t.Error("registered company demo set missing registry source")
	}

	soleTrader := DemoSet("Jane Smith", model.FormSoleTrader)
	if _, ok := soleTrader[NameRegistry]; ok {
		t.Error("sole trader demo set should not include a registry source")
	}
}

func TestDemoSet_CoversPipelineNames(t *testing.T) {
	set := DemoSet("Acme Ltd", model.FormLimitedCompany)
	for _, name := range []string{NameSearch, NameReviews, NameScamDB, NamePresence, NameAddress, NameCompliance} {
		if _, ok := set[name]; !ok {
			t.Errorf("demo set missing %s", name)
		}
	}
}

func TestGoodProfile_StableHash(t *testing.T) {
	if goodProfile("Acme Gas Plumbing Ltd") != goodProfile("Acme Gas Plumbing Ltd") {
		t.Error("profile selection must be stable for a name")
	}
}
