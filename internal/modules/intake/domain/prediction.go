package domain

import "time"

const (
	DefaultHeartRate = 70

	RiskPositive = 1
	RiskNegative = 0
)

// PredictionRequest is the fixed-shape body of POST /api/predict.
type PredictionRequest struct {
	Age                         int     `json:"age"`
	Cholesterol                 float64 `json:"cholesterol"`
	HeartRate                   float64 `json:"heart_rate"`
	Diabetes                    int     `json:"diabetes"`
	FamilyHistory               int     `json:"family_history"`
	Smoking                     int     `json:"smoking"`
	Obesity                     int     `json:"obesity"`
	AlcoholConsumption          float64 `json:"alcohol_consumption"`
	ExerciseHoursPerWeek        float64 `json:"exercise_hours_per_week"`
	Diet                        int     `json:"diet"`
	PreviousHeartProblems       int     `json:"previous_heart_problems"`
	MedicationUse               int     `json:"medication_use"`
	StressLevel                 int     `json:"stress_level"`
	SedentaryHoursPerDay        float64 `json:"sedentary_hours_per_day"`
	Income                      float64 `json:"income"`
	BMI                         float64 `json:"bmi"`
	Triglycerides               float64 `json:"triglycerides"`
	PhysicalActivityDaysPerWeek int     `json:"physical_activity_days_per_week"`
	SleepHoursPerDay            float64 `json:"sleep_hours_per_day"`
	BloodSugar                  float64 `json:"blood_sugar"`
	CKMB                        float64 `json:"ck_mb"`
	Troponin                    float64 `json:"troponin"`
	Gender                      int     `json:"gender"`
	SystolicBloodPressure       float64 `json:"systolic_blood_pressure"`
	DiastolicBloodPressure      float64 `json:"diastolic_blood_pressure"`
}

type Probability struct {
	NoRisk float64 `json:"no_risk"`
	Risk   float64 `json:"risk"`
}

type PredictionResult struct {
	Prediction  int         `json:"prediction"`
	Message     string      `json:"message"`
	Probability Probability `json:"probability"`
}

func (r PredictionResult) AtRisk() bool {
	return r.Prediction == RiskPositive
}

// BuildRequest snapshots the form into a request. Fields the form does not
// collect carry fixed defaults.
func BuildRequest(state FormState, today time.Time) PredictionRequest {
	dob, hasDOB := state.DateOfBirth()
	return PredictionRequest{
		Age:                    ComputeAge(dob, hasDOB, today),
		Cholesterol:            ParseOrZero(state.Text(FieldCholesterol)),
		HeartRate:              DefaultHeartRate,
		Diabetes:               state.Flag(FlagDiabetes),
		FamilyHistory:          state.Flag(FlagFamilyHistory),
		Smoking:                state.Flag(FlagSmoking),
		Obesity:                state.Flag(FlagObesity),
		ExerciseHoursPerWeek:   ParseOrZero(state.Text(FieldExerciseHoursPerWeek)),
		SedentaryHoursPerDay:   ParseOrZero(state.Text(FieldSedentaryHoursPerDay)),
		BMI:                    ComputeBMI(state.Text(FieldWeight), state.Text(FieldHeight)),
		Triglycerides:          ParseOrZero(state.Text(FieldTriglycerides)),
		SleepHoursPerDay:       ParseOrZero(state.Text(FieldSleepHoursPerDay)),
		BloodSugar:             ParseOrZero(state.Text(FieldBloodSugar)),
		CKMB:                   ParseOrZero(state.Text(FieldCKMB)),
		Troponin:               ParseOrZero(state.Text(FieldTroponin)),
		Gender:                 state.Flag(FlagGender),
		SystolicBloodPressure:  ParseOrZero(state.Text(FieldSystolicBloodPressure)),
		DiastolicBloodPressure: ParseOrZero(state.Text(FieldDiastolicBloodPressure)),
	}
}
