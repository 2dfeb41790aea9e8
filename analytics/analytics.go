package analytics

import "github.com/mohitkumar/onboarding/model"

type DataCollectorConfig struct {
	FileName      string
	CollectorType DataCollectorType
}

type DataCollectorType string

const LOG_FILE_DATA_COLLECTOR DataCollectorType = "LOG_FILE_DATA_COLLECTOR"
const NOOP_DATA_COLLECTOR DataCollectorType = "NOOP_DATA_COLLECTOR"

// FlowDataCollector records what users do inside onboarding flows.
type FlowDataCollector interface {
	RecordOpen(questionSet string, flowId string, variant model.Variant)
	RecordStep(questionSet string, flowId string, index int, progress float64)
	RecordCompletion(questionSet string, flowId string, answers model.AnswerMap)
	RecordAbandon(questionSet string, flowId string, index int, progress float64)
	Close() error
}

func NewDataCollector(config DataCollectorConfig) (FlowDataCollector, error) {
	switch config.CollectorType {
	case LOG_FILE_DATA_COLLECTOR:
		return NewLogFileDataCollector(config.FileName)
	}
	return NoopDataCollector{}, nil
}

type NoopDataCollector struct{}

func (NoopDataCollector) RecordOpen(string, string, model.Variant) {}
func (NoopDataCollector) RecordStep(string, string, int, float64) {}
func (NoopDataCollector) RecordCompletion(string, string, model.AnswerMap) {}
func (NoopDataCollector) RecordAbandon(string, string, int, float64) {}
func (NoopDataCollector) Close() error { return nil }
