package dto

// DateLayout is the accepted date-of-birth format.
const DateLayout = "2006-01-02"

// FormInput carries the raw intake form. Values and Flags are keyed by the
// wire names of the fields; absent keys mean empty text or an unchecked
// flag.
type FormInput struct {
	DateOfBirth string
	Values      map[string]string
	Flags       map[string]bool
}

type DeriveInput struct {
	DateOfBirth string
	Weight      string
	Height      string
}

type DeriveOutput struct {
	Age int
	BMI float64
}

type SubmitInput struct {
	Form FormInput
}

type PredictionOutput struct {
	RequestID   string
	Prediction  int
	AtRisk      bool
	Message     string
	NoRisk      float64
	Risk        float64
	Age         int
	BMI         float64
	SubmittedAt string
}

// FieldInfo describes one numeric form field for front ends.
type FieldInfo struct {
	Name        string
	Label       string
	Placeholder string
}

// FlagInfo describes one binary form control.
type FlagInfo struct {
	Name  string
	Label string
}

var NumericFields = []FieldInfo{
	{Name: "cholesterol", Label: "Cholesterol (mg/dL)", Placeholder: "cholesterol level"},
	{Name: "exercise_hours_per_week", Label: "Exercise hours/week", Placeholder: "hours of exercise"},
	{Name: "sedentary_hours_per_day", Label: "Sedentary hours/day", Placeholder: "hours sitting per day"},
	{Name: "weight", Label: "Weight (kg)", Placeholder: "weight"},
	{Name: "height", Label: "Height (cm)", Placeholder: "height"},
	{Name: "triglycerides", Label: "Triglycerides (mg/dL)", Placeholder: "triglycerides level"},
	{Name: "sleep_hours_per_day", Label: "Sleep hours/day", Placeholder: "hours of sleep"},
	{Name: "blood_sugar", Label: "Blood sugar (mg/dL)", Placeholder: "blood sugar level"},
	{Name: "ck_mb", Label: "CK-MB", Placeholder: "CK-MB level"},
	{Name: "troponin", Label: "Troponin", Placeholder: "troponin level"},
	{Name: "systolic_blood_pressure", Label: "Systolic pressure", Placeholder: "systolic blood pressure"},
	{Name: "diastolic_blood_pressure", Label: "Diastolic pressure", Placeholder: "diastolic blood pressure"},
}

var FlagFields = []FlagInfo{
	{Name: "gender", Label: "Female"},
	{Name: "diabetes", Label: "Diabetes"},
	{Name: "family_history", Label: "Family history"},
	{Name: "smoking", Label: "Smoking"},
	{Name: "obesity", Label: "Obesity"},
}
