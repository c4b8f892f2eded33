// Copyright 2025 The cmdkit Authors.

package cmdkit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/posener/complete/v2/predict"
)

func TestSubCmdCompletion(t *testing.T) {
	root := New("app")
	root.Command("copy", "")
	root.Command("move", "")
	root.Command("ghost", "", CommandConfig{Hidden: true})

	if got, want := root.SubCmdList(), []string{"copy", "move"}; !cmp.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if root.SubCmdGet("copy") == nil {
		t.Error("SubCmdGet should resolve a visible child")
	}
	if root.SubCmdGet("ghost") == nil {
		t.Error("SubCmdGet should resolve a hidden child")
	}
	if root.SubCmdGet("nope") != nil {
		t.Error("SubCmdGet should return nil for unknown names")
	}
}

func TestFlagCompletion(t *testing.T) {
	root := New("app")
	root.Option("--verbose, -v", "bare flag")
	sub := root.Command("sub", "").
		Option("--env <e:envname>", "environment")
	sub.Complete("envname", predict.Set{"dev", "prod"})

	if got, want := sub.FlagList(), []string{"env"}; !cmp.Equal(got, want) {
		t.Errorf("FlagList: got %v, want %v", got, want)
	}

	p := sub.FlagGet("env")
	if p == nil {
		t.Fatal("no predictor for env")
	}
	got := p.Predict("")
	seen := map[string]bool{}
	for _, s := range got {
		seen[s] = true
	}
	if !seen["dev"] || !seen["prod"] {
		t.Errorf("got %v, want dev and prod", got)
	}

	// a bare boolean flag predicts nothing
	if got := root.FlagGet("verbose").Predict(""); len(got) != 0 {
		t.Errorf("bare flag predicted %v", got)
	}
}

func TestArgsCompletion(t *testing.T) {
	root := New("app")
	root.Complete("envname", predict.Set{"dev", "prod"}, TypeConfig{Global: true})
	sub := root.Command("sub <e:envname>", "")
	plain := root.Command("plain", "")

	if got := sub.ArgsGet().Predict(""); len(got) == 0 {
		t.Errorf("typed slot should predict, got %v", got)
	}
	if got := plain.ArgsGet().Predict(""); len(got) != 0 {
		t.Errorf("slotless command predicted %v", got)
	}
}
