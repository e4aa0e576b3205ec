package dto

// TrendResult describes the score-delta trend over a ticker's recent history ordered most-recent first.
type TrendResult struct {
	Trend   string `json:"trend"`
	Change  int    `json:"change"`
	History []int  `json:"history"`
}

// TrainingReport holds the held-out evaluation of a trained model.
type TrainingReport struct {
	Rows      int     `json:"rows"`
	TrainRows int     `json:"train_rows"`
	TestRows  int     `json:"test_rows"`
	R2        float64 `json:"r2"`
	RMSE      float64 `json:"rmse"`
}
