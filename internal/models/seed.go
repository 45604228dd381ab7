package models

// DemoPlans returns the plans a new session starts with when seeding is enabled.
func DemoPlans() []TrainingPlan {
	return []TrainingPlan{
		{
			ID:   "plan-1",
			Name: "Upper Body Focus",
			Exercises: []Exercise{
				{ID: "ex-1", Name: "Bench Press", Sets: 3, Reps: 8, Weight: 60},
				{ID: "ex-2", Name: "Overhead Press", Sets: 3, Reps: 10, Weight: 30},
				{ID: "ex-3", Name: "Tricep Dips", Sets: 3, Reps: 12, Weight: 10},
			},
		},
		{
			ID:   "plan-2",
			Name: "Leg Day",
			Exercises: []Exercise{
				{ID: "ex-4", Name: "Squats", Sets: 4, Reps: 8, Weight: 100},
				{ID: "ex-5", Name: "Leg Press", Sets: 3, Reps: 12, Weight: 150},
			},
		},
	}
}
