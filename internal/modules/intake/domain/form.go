package domain

import (
	"fmt"
	"time"

	apperrors "heartrisk/internal/platform/errors"
)

// Field names a numeric-as-text form field. Values match the wire keys.
type Field string

const (
	FieldCholesterol            Field = "cholesterol"
	FieldExerciseHoursPerWeek   Field = "exercise_hours_per_week"
	FieldSedentaryHoursPerDay   Field = "sedentary_hours_per_day"
	FieldWeight                 Field = "weight"
	FieldHeight                 Field = "height"
	FieldTriglycerides          Field = "triglycerides"
	FieldSleepHoursPerDay       Field = "sleep_hours_per_day"
	FieldBloodSugar             Field = "blood_sugar"
	FieldCKMB                   Field = "ck_mb"
	FieldTroponin               Field = "troponin"
	FieldSystolicBloodPressure  Field = "systolic_blood_pressure"
	FieldDiastolicBloodPressure Field = "diastolic_blood_pressure"
)

// Flag names a binary form control stored as 0 or 1.
type Flag string

const (
	FlagGender        Flag = "gender"
	FlagDiabetes      Flag = "diabetes"
	FlagFamilyHistory Flag = "family_history"
	FlagSmoking       Flag = "smoking"
	FlagObesity       Flag = "obesity"
)

var Fields = []Field{
	FieldCholesterol,
	FieldExerciseHoursPerWeek,
	FieldSedentaryHoursPerDay,
	FieldWeight,
	FieldHeight,
	FieldTriglycerides,
	FieldSleepHoursPerDay,
	FieldBloodSugar,
	FieldCKMB,
	FieldTroponin,
	FieldSystolicBloodPressure,
	FieldDiastolicBloodPressure,
}

var Flags = []Flag{FlagGender, FlagDiabetes, FlagFamilyHistory, FlagSmoking, FlagObesity}

func (f Field) Validate() error {
	for _, known := range Fields {
		if f == known {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown field %q", apperrors.ErrInvalidInput, string(f))
}

func (f Flag) Validate() error {
	for _, known := range Flags {
		if f == known {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown flag %q", apperrors.ErrInvalidInput, string(f))
}

// FormState is the intake record. Numeric fields stay raw text until a
// request is built; every update returns a copy and leaves the receiver
// untouched.
type FormState struct {
	dateOfBirth time.Time
	hasDOB      bool
	text        map[Field]string
	flags       map[Flag]int
}

func NewFormState() FormState {
	return FormState{}
}

func (s FormState) DateOfBirth() (time.Time, bool) {
	return s.dateOfBirth, s.hasDOB
}

func (s FormState) Text(field Field) string {
	return s.text[field]
}

func (s FormState) Flag(flag Flag) int {
	return s.flags[flag]
}

func (s FormState) SetDateOfBirth(dob time.Time) FormState {
	next := s.clone()
	next.dateOfBirth = time.Date(dob.Year(), dob.Month(), dob.Day(), 0, 0, 0, 0, time.UTC)
	next.hasDOB = true
	return next
}

func (s FormState) ClearDateOfBirth() FormState {
	next := s.clone()
	next.dateOfBirth = time.Time{}
	next.hasDOB = false
	return next
}

func (s FormState) SetText(field Field, value string) (FormState, error) {
	if err := field.Validate(); err != nil {
		return s, err
	}
	next := s.clone()
	next.text[field] = value
	return next, nil
}

func (s FormState) SetFlag(flag Flag, on bool) (FormState, error) {
	if err := flag.Validate(); err != nil {
		return s, err
	}
	next := s.clone()
	if on {
		next.flags[flag] = 1
	} else {
		next.flags[flag] = 0
	}
	return next, nil
}

func (s FormState) clone() FormState {
	next := FormState{
		dateOfBirth: s.dateOfBirth,
		hasDOB:      s.hasDOB,
		text:        make(map[Field]string, len(s.text)+1),
		flags:       make(map[Flag]int, len(s.flags)+1),
	}
	for k, v := range s.text {
		next.text[k] = v
	}
	for k, v := range s.flags {
		next.flags[k] = v
	}
	return next
}
