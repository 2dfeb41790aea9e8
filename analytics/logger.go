package analytics

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mohitkumar/onboarding/model"
)

// LogFileDataCollector appends one JSON line per flow event to a file.
type LogFileDataCollector struct {
	fileName string
	file     *os.File
	logger   *zap.Logger
}

func NewLogFileDataCollector(fileName string) (*LogFileDataCollector, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.StacktraceKey = ""
	encoderConfig.CallerKey = ""
	fileEncoder := zapcore.NewJSONEncoder(encoderConfig)
	logFile, err := os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	core := zapcore.NewCore(fileEncoder, zapcore.AddSync(logFile), zapcore.InfoLevel)
	return &LogFileDataCollector{
		fileName: fileName,
		file:     logFile,
		logger:   zap.New(core),
	}, nil
}

func (lc *LogFileDataCollector) RecordOpen(questionSet string, flowId string, variant model.Variant) {
	lc.logger.Info("open", zap.String("questionSet", questionSet), zap.String("id", flowId), zap.String("variant", string(variant)))
}

func (lc *LogFileDataCollector) RecordStep(questionSet string, flowId string, index int, progress float64) {
	lc.logger.Info("step", zap.String("questionSet", questionSet), zap.String("id", flowId), zap.Int("index", index), zap.Float64("progress", progress))
}

func (lc *LogFileDataCollector) RecordCompletion(questionSet string, flowId string, answers model.AnswerMap) {
	lc.logger.Info("completed", zap.String("questionSet", questionSet), zap.String("id", flowId), zap.Any("answers", answers))
}

func (lc *LogFileDataCollector) RecordAbandon(questionSet string, flowId string, index int, progress float64) {
	lc.logger.Info("abandoned", zap.String("questionSet", questionSet), zap.String("id", flowId), zap.Int("index", index), zap.Float64("progress", progress))
}

func (lc *LogFileDataCollector) Close() error {
	_ = lc.logger.Sync()
	return lc.file.Close()
}
