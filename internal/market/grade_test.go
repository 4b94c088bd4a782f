package market

import (
	"encoding/json"
	"testing"
)

func TestRoundStepLiterals(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{7, 7},
		{23, 25},
		{567, 570},
		{12345, 12500},
		{234567, 235000},
	}
	for _, c := range cases {
		if got := RoundStep(c.in); got != c.want {
			t.Fatalf("RoundStep(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestRoundStepBucketBoundaries(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{9.5, 9.5},    // below 10 passes through, fractions included
		{10, 10},      // first bucket: nearest 5
		{12, 10},
		{13, 15},
		{49, 50},
		{50, 50},      // nearest 10
		{994, 990},
		{999, 1000},
		{1000, 1000},  // nearest 50
		{1024, 1000},
		{1025, 1050},
		{9999, 10000},
		{10000, 10000}, // nearest 500
		{10249, 10000},
		{10250, 10500},
		{99999, 100000},
		{100000, 100000}, // nearest 5000
		{102499, 100000},
		{102500, 105000},
		{999999, 1000000},
		{1000000, 1000000}, // nearest 50000
		{1024999, 1000000},
		{1025000, 1050000},
	}
	for _, c := range cases {
		if got := RoundStep(c.in); got != c.want {
			t.Fatalf("RoundStep(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestGradeOrderAndMultipliers(t *testing.T) {
	if !(Normal < Superior && Superior < Flawless && Flawless < Epic && Epic < Legendary) {
		t.Fatal("grades are not ordered low to high")
	}

	if Normal.Multiplier() != 1 {
		t.Fatalf("normal multiplier = %v, want 1 (normal is the unscaled baseline)", Normal.Multiplier())
	}
	prev := Normal.Multiplier()
	for _, g := range []Grade{Superior, Flawless, Epic, Legendary} {
		m := g.Multiplier()
		if m <= prev {
			t.Fatalf("%s multiplier %v not greater than previous %v", g, m, prev)
		}
		prev = m
	}
}

func TestGradeFusesFrom(t *testing.T) {
	if _, ok := Normal.FusesFrom(); ok {
		t.Fatal("normal has no lower grade to fuse from")
	}
	cases := map[Grade]Grade{
		Superior:  Normal,
		Flawless:  Superior,
		Epic:      Flawless,
		Legendary: Epic,
	}
	for g, want := range cases {
		lower, ok := g.FusesFrom()
		if !ok || lower != want {
			t.Fatalf("%s.FusesFrom() = %v, %v, want %v, true", g, lower, ok, want)
		}
	}
}

func TestGradeJSONRoundTrip(t *testing.T) {
	for _, g := range Grades() {
		data, err := json.Marshal(g)
		if err != nil {
			t.Fatalf("marshal %s: %v", g, err)
		}
		if string(data) != `"`+g.String()+`"` {
			t.Fatalf("marshal %s = %s", g, data)
		}
		var back Grade
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != g {
			t.Fatalf("round trip %s = %s", g, back)
		}
	}

	var g Grade
	if err := json.Unmarshal([]byte(`"mythic"`), &g); err == nil {
		t.Fatal("unknown grade name should not unmarshal")
	}
}

func TestParseGrade(t *testing.T) {
	g, ok := ParseGrade("legendary")
	if !ok || g != Legendary {
		t.Fatalf("ParseGrade(legendary) = %v, %v", g, ok)
	}
	if _, ok := ParseGrade("Legendary"); ok {
		t.Fatal("grade names are lowercase only")
	}
}
