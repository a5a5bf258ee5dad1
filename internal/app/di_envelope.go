package app

import (
	"fmt"
	"sync"

	envelopeHTTP "github.com/allisson/blockcrypt/internal/envelope/http"
	envelopeRepository "github.com/allisson/blockcrypt/internal/envelope/repository"
	envelopeService "github.com/allisson/blockcrypt/internal/envelope/service"
	envelopeUseCase "github.com/allisson/blockcrypt/internal/envelope/usecase"
)

// envelopeContainer holds the envelope components of the DI container.
type envelopeContainer struct {
	slicer           envelopeService.Slicer
	envelopeRepo     envelopeUseCase.EnvelopeRepository
	envelopeUseCase  envelopeUseCase.EnvelopeUseCase
	envelopeHandler  *envelopeHTTP.EnvelopeHandler
	transportHandler *envelopeHTTP.TransportHandler

	slicerInit           sync.Once
	envelopeRepoInit     sync.Once
	envelopeUseCaseInit  sync.Once
	envelopeHandlerInit  sync.Once
	transportHandlerInit sync.Once
}

// Slicer returns the chunk slicer service.
func (c *Container) Slicer() envelopeService.Slicer {
	c.slicerInit.Do(func() {
		c.slicer = envelopeService.NewSlicer()
	})
	return c.slicer
}

// EnvelopeRepository returns the envelope repository based on database driver.
func (c *Container) EnvelopeRepository() (envelopeUseCase.EnvelopeRepository, error) {
	c.envelopeRepoInit.Do(func() {
		repo, err := c.initEnvelopeRepository()
		if err != nil {
			c.initErrors["envelopeRepo"] = err
			return
		}
		c.envelopeRepo = repo
	})
	if storedErr, exists := c.initErrors["envelopeRepo"]; exists {
		return nil, storedErr
	}
	return c.envelopeRepo, nil
}

// EnvelopeUseCase returns the envelope use case.
func (c *Container) EnvelopeUseCase() (envelopeUseCase.EnvelopeUseCase, error) {
	c.envelopeUseCaseInit.Do(func() {
		useCase, err := c.initEnvelopeUseCase()
		if err != nil {
			c.initErrors["envelopeUseCase"] = err
			return
		}
		c.envelopeUseCase = useCase
	})
	if storedErr, exists := c.initErrors["envelopeUseCase"]; exists {
		return nil, storedErr
	}
	return c.envelopeUseCase, nil
}

// EnvelopeHandler returns the HTTP handler for envelope management operations.
func (c *Container) EnvelopeHandler() (*envelopeHTTP.EnvelopeHandler, error) {
	c.envelopeHandlerInit.Do(func() {
		handler, err := c.initEnvelopeHandler()
		if err != nil {
			c.initErrors["envelopeHandler"] = err
			return
		}
		c.envelopeHandler = handler
	})
	if storedErr, exists := c.initErrors["envelopeHandler"]; exists {
		return nil, storedErr
	}
	return c.envelopeHandler, nil
}

// TransportHandler returns the HTTP handler for stateless transport operations.
func (c *Container) TransportHandler() (*envelopeHTTP.TransportHandler, error) {
	c.transportHandlerInit.Do(func() {
		handler, err := c.initTransportHandler()
		if err != nil {
			c.initErrors["transportHandler"] = err
			return
		}
		c.transportHandler = handler
	})
	if storedErr, exists := c.initErrors["transportHandler"]; exists {
		return nil, storedErr
	}
	return c.transportHandler, nil
}

// initEnvelopeRepository creates the envelope repository based on the database driver.
func (c *Container) initEnvelopeRepository() (envelopeUseCase.EnvelopeRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for envelope repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return envelopeRepository.NewPostgreSQLEnvelopeRepository(db), nil
	case "mysql":
		return envelopeRepository.NewMySQLEnvelopeRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initEnvelopeUseCase creates the envelope use case with all its dependencies.
func (c *Container) initEnvelopeUseCase() (envelopeUseCase.EnvelopeUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for envelope use case: %w", err)
	}

	envelopeRepo, err := c.EnvelopeRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get envelope repository for envelope use case: %w", err)
	}

	keyRing, err := c.KeyRing()
	if err != nil {
		return nil, fmt.Errorf("failed to get key ring for envelope use case: %w", err)
	}

	baseUseCase := envelopeUseCase.NewEnvelopeUseCase(
		txManager,
		envelopeRepo,
		keyRing,
		c.CipherManager(),
		c.Slicer(),
		c.config.ChunkSize,
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for envelope use case: %w", err)
		}
		return envelopeUseCase.NewEnvelopeUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initEnvelopeHandler creates the envelope HTTP handler with all its dependencies.
func (c *Container) initEnvelopeHandler() (*envelopeHTTP.EnvelopeHandler, error) {
	useCase, err := c.EnvelopeUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get envelope use case for envelope handler: %w", err)
	}

	return envelopeHTTP.NewEnvelopeHandler(useCase, c.Logger()), nil
}

// initTransportHandler creates the transport HTTP handler with all its dependencies.
func (c *Container) initTransportHandler() (*envelopeHTTP.TransportHandler, error) {
	useCase, err := c.EnvelopeUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get envelope use case for transport handler: %w", err)
	}

	return envelopeHTTP.NewTransportHandler(useCase, c.Logger()), nil
}
