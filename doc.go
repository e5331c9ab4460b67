// Package scorecast predicts exam scores from study hours and exam
// difficulty with an ordinary least squares linear regression.
//
// A CSV of student records is prepared into numeric features, split into
// train and test partitions with a seeded shuffle, fitted, and persisted as
// a single artifact holding the model and its training feature order. The
// same artifact backs the prediction CLI and the HTTP API.
//
// # Quick Start
//
//	scorecast train    --config configs/config.yaml
//	scorecast evaluate --config configs/config.yaml --plot out/pred.png
//	scorecast predict  --config configs/config.yaml --hours 4.5 --difficulty Hard
//	scorecast serve    --config configs/config.yaml
//
// Using the packages directly:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := pipeline.Train(ctx, cfg); err != nil {
//	    log.Fatal(err)
//	}
//	p, err := predict.LoadPredictor(cfg.ModelPath)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := p.Predict(predict.Input{HoursStudied: 4.5, ExamDifficulty: "Hard"})
//
// # Packages
//
//   - dataset: CSV loading into an in-memory table
//   - preprocessing: one-hot encoding, numeric coercion, invalid-row removal
//   - model_selection: seeded train/test split
//   - linear: LinearRegression (minimum-norm least squares through SVD)
//   - metrics: MAE, MSE, RMSE, R²
//   - core/model: model interfaces, weights and the persisted artifact
//   - pipeline: train and evaluate flows, prediction plots
//   - predict: single-row inference shared by the CLI and the API
//   - config: YAML configuration
//   - api: HTTP server with Prometheus metrics
//   - pkg/errors, pkg/log: error taxonomy and structured logging
//
// # HTTP API
//
//	GET  /health       {"status":"healthy","message":"API is running"}
//	POST /predict      {"hours_studied": 4.5, "exam_difficulty": "Hard"}
//	GET  /model_info   model type, feature names, parameters, coefficients
//	GET  /metrics      Prometheus exposition
//
// Validation failures return 400 and every other failure returns 500, both
// with {"error": "..."}.
package scorecast
