package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-10-01", "2024-02-29"}
	invalid := []string{"2023-13-01", "2023-02-30", "01-10-2023", "2023/10/01", ""}
	for _, d := range valid {
		if _, ok := IsValidDate(d); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", d)
		}
	}
	for _, d := range invalid {
		if _, ok := IsValidDate(d); ok {
			t.Errorf("IsValidDate(%q) = true, want false", d)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"Sick", "Leave"}
	if !IsInSlice("Sick", slice) {
		t.Error("IsInSlice(Sick) = false, want true")
	}
	if IsInSlice("sick", slice) {
		t.Error("IsInSlice(sick) = true, want false")
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "date", Message: "date is required"},
		{Field: "status", Message: "status is invalid"},
	}
	assert.Equal(t, map[string]string{
		"date":   "date is required",
		"status": "status is invalid",
	}, errs.ToMap())
	assert.Equal(t, "date: date is required; status: status is invalid", errs.Error())
}

type sampleRequest struct {
	Kind   string  `json:"kind" validate:"required,oneof=A B"`
	Name   string  `json:"name" validate:"required_if=Kind B,omitempty,notblank"`
	Amount float64 `json:"amount" validate:"gte=-90,lte=90"`
	Hidden string  `json:"-"`
}

func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.Nil(t, Struct(sampleRequest{Kind: "A"}))
		assert.Nil(t, Struct(sampleRequest{Kind: "B", Name: "west"}))
	})

	t.Run("reports json field names", func(t *testing.T) {
		errs := Struct(sampleRequest{Kind: "C", Amount: 91})
		require.Len(t, errs, 2)
		m := errs.ToMap()
		assert.Equal(t, "kind must be one of: A, B", m["kind"])
		assert.Equal(t, "amount must be less than or equal to 90", m["amount"])
	})

	t.Run("conditional requirement", func(t *testing.T) {
		errs := Struct(sampleRequest{Kind: "B"})
		require.Len(t, errs, 1)
		assert.Equal(t, "name", errs[0].Field)
		assert.Equal(t, "name is required", errs[0].Message)
	})

	t.Run("blank is not a value", func(t *testing.T) {
		errs := Struct(sampleRequest{Kind: "B", Name: "   "})
		require.Len(t, errs, 1)
		assert.Equal(t, "name is required", errs[0].Message)
	})
}

func TestOneOfParams(t *testing.T) {
	assert.Equal(t, []string{"Head Office", "Branch", "WFH"}, oneOfParams("'Head Office' Branch WFH"))
}
