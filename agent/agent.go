package agent

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mohitkumar/onboarding/config"
	"github.com/mohitkumar/onboarding/container"
	"github.com/mohitkumar/onboarding/logger"
	"github.com/mohitkumar/onboarding/metadata"
	"github.com/mohitkumar/onboarding/metrics"
	"github.com/mohitkumar/onboarding/rest"
	"github.com/mohitkumar/onboarding/service"
	"github.com/mohitkumar/onboarding/util"
)

const healthCheckInterval = 10 * time.Second

type Agent struct {
	Config          config.Config
	container       *container.DIContiner
	metadataService metadata.MetadataService
	flowService     *service.FlowService
	httpServer      *rest.Server
	healthWorker    *util.TickWorker
	healthErr       error
	healthLock      sync.RWMutex
	shutdown        bool
	shutdowns       chan struct{}
	shutdownLock    sync.Mutex
	wg              sync.WaitGroup
}

func New(config config.Config) (*Agent, error) {
	a := &Agent{
		Config:    config,
		shutdowns: make(chan struct{}),
	}
	setup := []func() error{
		a.setupMetrics,
		a.setupContainer,
		a.setupMetadataService,
		a.setupFlowService,
		a.setupHealthWorker,
		a.setupHttpServer,
	}
	if err := a.setup(setup); err != nil {
		return nil, err
	}
	return a, nil
}

// setup runs the steps in order. When one fails, whatever the earlier steps
// started is stopped again.
func (a *Agent) setup(steps []func() error) error {
	for _, fn := range steps {
		if err := fn(); err != nil {
			a.teardown()
			return err
		}
	}
	return nil
}

func (a *Agent) teardown() {
	if a.healthWorker != nil {
		a.healthWorker.Stop()
	}
	if a.flowService != nil {
		_ = a.flowService.Stop()
	}
	a.wg.Wait()
	metrics.Unregister()
	if a.container != nil {
		_ = a.container.Close()
	}
}

func (a *Agent) setupMetrics() error {
	return metrics.Register()
}

func (a *Agent) setupContainer() error {
	a.container = container.NewDiContainer()
	return a.container.Init(context.Background(), a.Config)
}

func (a *Agent) setupMetadataService() error {
	a.metadataService = metadata.NewMetadataService(a.container.GetQuestionSetDao())
	return a.metadataService.LoadQuestionSets(context.Background(), a.Config.QuestionSetDir)
}

func (a *Agent) setupFlowService() error {
	a.flowService = service.NewFlowService(a.metadataService, a.container.GetFlowDao(), a.container.GetSubmissionDao(),
		a.container.GetDataCollector(), a.Config.FlowTTL, a.Config.WorkerCapacity, &a.wg)
	a.flowService.Start()
	return nil
}

func (a *Agent) setupHealthWorker() error {
	a.healthWorker = util.NewTickWorker("health-check", healthCheckInterval, a.checkHealth, &a.wg)
	a.checkHealth()
	a.healthWorker.Start()
	return nil
}

func (a *Agent) setupHttpServer() error {
	var err error
	a.httpServer, err = rest.NewServer(a.Config.HttpPort, a.metadataService, a.flowService, a.health)
	if err != nil {
		return err
	}
	return nil
}

func (a *Agent) checkHealth() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := a.container.Ping(ctx)
	if err != nil {
		logger.Warn("storage health check failed", zap.Error(err))
	}
	a.healthLock.Lock()
	a.healthErr = err
	a.healthLock.Unlock()
}

func (a *Agent) health() error {
	a.healthLock.RLock()
	defer a.healthLock.RUnlock()
	return a.healthErr
}

func (a *Agent) Start() error {
	go func() {
		if err := a.httpServer.Start(); err != nil {
			logger.Error("http server failed", zap.Error(err))
			_ = a.Shutdown()
		}
	}()
	return nil
}

// Done is closed once Shutdown has started.
func (a *Agent) Done() <-chan struct{} {
	return a.shutdowns
}

func (a *Agent) Shutdown() error {
	a.shutdownLock.Lock()
	defer a.shutdownLock.Unlock()
	if a.shutdown {
		return nil
	}
	logger.Info("shutting down server")
	a.shutdown = true
	close(a.shutdowns)

	shutdown := []func() error{
		a.httpServer.Stop,
		a.flowService.Stop,
		func() error {
			a.healthWorker.Stop()
			return nil
		},
	}
	for _, fn := range shutdown {
		if err := fn(); err != nil {
			return err
		}
	}
	logger.Info("waiting for all services to shutdown...")
	a.wg.Wait()
	metrics.Unregister()
	return a.container.Close()
}
