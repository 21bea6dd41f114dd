package out_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	intakeoutadapter "heartrisk/internal/modules/intake/adapter/out"
	"heartrisk/internal/modules/intake/domain"
	"heartrisk/internal/platform/httpjson"
)

var requiredKeys = []string{
	"age", "cholesterol", "heart_rate", "diabetes", "family_history", "smoking", "obesity",
	"alcohol_consumption", "exercise_hours_per_week", "diet", "previous_heart_problems",
	"medication_use", "stress_level", "sedentary_hours_per_day", "income", "bmi",
	"triglycerides", "physical_activity_days_per_week", "sleep_hours_per_day", "blood_sugar",
	"ck_mb", "troponin", "gender", "systolic_blood_pressure", "diastolic_blood_pressure",
}

func TestHTTPPredictorSendsEveryFieldAndDecodesResult(t *testing.T) {
	t.Parallel()
	var received map[string]any
	calls := 0
	r := mux.NewRouter()
	r.HandleFunc(intakeoutadapter.PredictPath, func(w http.ResponseWriter, req *http.Request) {
		calls++
		if err := json.NewDecoder(req.Body).Decode(&received); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"prediction":1,"message":"At risk of heart attack","probability":{"no_risk":0.2,"risk":0.8}}`))
	}).Methods(http.MethodPost)
	srv := httptest.NewServer(r)
	defer srv.Close()

	predictor := intakeoutadapter.NewHTTPPredictor(httpjson.New(srv.URL, 0))
	result, err := predictor.Predict(context.Background(), "req-1", domain.PredictionRequest{Cholesterol: 200, HeartRate: 70, Diabetes: 1})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one request, got %d", calls)
	}
	for _, key := range requiredKeys {
		if _, ok := received[key]; !ok {
			t.Fatalf("request missing %q: %v", key, received)
		}
	}
	if received["cholesterol"] != float64(200) || received["heart_rate"] != float64(70) || received["diabetes"] != float64(1) {
		t.Fatalf("unexpected payload values: %v", received)
	}
	if !result.AtRisk() || result.Probability.Risk != 0.8 || result.Message == "" {
		t.Fatalf("unexpected result: %+v", result)
	}
}
