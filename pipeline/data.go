// Package pipeline wires the dataset loader, feature preparation, splitting,
// training and evaluation into the offline train and evaluate flows.
package pipeline

import (
	"fmt"

	"github.com/YuminosukeSato/scorecast/config"
	"github.com/YuminosukeSato/scorecast/dataset"
	"github.com/YuminosukeSato/scorecast/model_selection"
	"github.com/YuminosukeSato/scorecast/pkg/errors"
	"github.com/YuminosukeSato/scorecast/pkg/log"
	"github.com/YuminosukeSato/scorecast/preprocessing"
)

// Data is a prepared, split dataset.
type Data struct {
	*model_selection.Split

	// FeatureNames is the column order of XTrain and XTest.
	FeatureNames []string
	// Rows is the number of rows read from the file.
	Rows int
	// Dropped is the number of rows removed during preparation.
	Dropped int
}

// LoadDataPipeline loads the CSV at cfg.DataPath, prepares features and
// target with the configured columns and splits them with the configured
// test size and seed. Train and Evaluate both go through it so that they
// see the same split.
func LoadDataPipeline(cfg *config.Config) (*Data, error) {
	logger := log.GetLoggerWithName("pipeline")

	table, err := dataset.LoadCSV(cfg.DataPath)
	if err != nil {
		return nil, err
	}

	feats, y, err := preprocessing.PrepareFeaturesAndTarget(table,
		preprocessing.WithFeatureColumns(cfg.FeatureColumns()...),
		preprocessing.WithTargetColumn(cfg.Target),
	)
	if err != nil {
		return nil, err
	}
	if feats.Dropped > 0 {
		errors.Warn(errors.NewDataConversionWarning("string", "float64",
			fmt.Sprintf("%d of %d rows dropped because a value could not be parsed", feats.Dropped, table.NumRows())))
		logger.Warn("Dropped unparseable rows",
			log.DataPathKey, cfg.DataPath,
			log.DroppedRowsKey, feats.Dropped,
			log.SamplesKey, table.NumRows(),
		)
	}

	split, err := model_selection.TrainTestSplit(feats.X, y,
		model_selection.WithTestSize(cfg.TestSize),
		model_selection.WithRandomState(cfg.RandomState),
	)
	if err != nil {
		return nil, err
	}

	logger.Debug("Dataset prepared",
		log.PhaseKey, log.PhasePreprocessing,
		log.DataPathKey, cfg.DataPath,
		log.FeatureNamesKey, feats.Names,
		log.TrainSamplesKey, len(split.TrainIndex),
		log.TestSamplesKey, len(split.TestIndex),
		log.TestSizeKey, cfg.TestSize,
		log.RandomSeedKey, cfg.RandomState,
	)

	return &Data{
		Split:        split,
		FeatureNames: feats.Names,
		Rows:         table.NumRows(),
		Dropped:      feats.Dropped,
	}, nil
}
