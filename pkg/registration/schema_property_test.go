package registration

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"
)

func validRecord(t *rapid.T) FormRecord {
	password := rapid.StringMatching(`[a-zA-Z0-9]{6,20}`).Draw(t, "password")
	return FormRecord{
		Name:            rapid.StringMatching(`[A-Za-z][A-Za-z ]{0,30}`).Draw(t, "name"),
		Email:           rapid.StringMatching(`[a-z]{1,10}@[a-z]{1,10}\.(com|org|net)`).Draw(t, "email"),
		Password:        password,
		ConfirmPassword: password,
	}
}

func TestPropertyValidRecordsPass(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		record := validRecord(t)
		result := Validate(record)
		if !result.Valid() {
			t.Fatalf("expected valid record %+v, got %v", record, result.Issues)
		}
	})
}

func TestPropertyEmptyFieldFails(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		record := validRecord(t)
		path := rapid.SampledFrom(Fields()).Draw(t, "field")
		if err := Schema().Set(&record, path, ""); err != nil {
			t.Fatalf("set: %v", err)
		}

		result := Validate(record)
		if len(result.For(path)) == 0 {
			t.Fatalf("expected an issue on %s for %+v", path, record)
		}
	})
}

func TestPropertyShortPasswordsFail(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		record := validRecord(t)
		short := rapid.StringMatching(`[a-z]{1,5}`).Draw(t, "short")
		path := rapid.SampledFrom([]string{FieldPassword, FieldConfirmPassword}).Draw(t, "field")
		if err := Schema().Set(&record, path, short); err != nil {
			t.Fatalf("set: %v", err)
		}

		found := false
		for _, issue := range Validate(record).For(path) {
			if issue.Message == MessagePasswordTooShort {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected length message on %s for %q", path, short)
		}
	})
}

func TestPropertyMismatchReportedOnConfirm(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		record := validRecord(t)
		record.ConfirmPassword = record.Password + rapid.StringMatching(`[a-z]{1,4}`).Draw(t, "suffix")

		result := Validate(record)
		want := map[string]string{FieldConfirmPassword: MessagePasswordMismatch}
		if diff := cmp.Diff(want, result.FirstErrors()); diff != "" {
			t.Fatalf("first errors mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestPropertyValidateIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		record := FormRecord{
			Name:            rapid.String().Draw(t, "name"),
			Email:           rapid.String().Draw(t, "email"),
			Password:        rapid.String().Draw(t, "password"),
			ConfirmPassword: rapid.String().Draw(t, "confirm"),
		}
		first := Validate(record)
		second := Validate(record)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("validate not idempotent (-first +second):\n%s", diff)
		}
	})
}
