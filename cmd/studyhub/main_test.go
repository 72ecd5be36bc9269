package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavelanni/studyhub/internal/model"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	color.NoColor = true

	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestCalcCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bmi", []string{"calc", "bmi", "--height", "175", "--weight", "70"}, "22.9"},
		{"bmr", []string{"calc", "bmr", "--age", "25", "--sex", "female", "--weight", "70", "--height", "175", "--activity", "1.2"}, "1809 kcal/day"},
		{"dosage", []string{"calc", "dosage", "--weight", "70", "--dose", "1"}, "70.00 mg"},
		{"incomplete", []string{"calc", "bmi", "--height", "175"}, "incomplete input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, run(t, tt.args...), tt.want)
		})
	}
}

func TestQuestionsExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	run(t, "questions", "-o", path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var exp model.BankExport
	require.NoError(t, json.Unmarshal(data, &exp))
	assert.Equal(t, 5, exp.NumQuestions)
	assert.Len(t, exp.Questions, 5)
}
