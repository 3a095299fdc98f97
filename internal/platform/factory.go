package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/bptrack/pkg/adapters/fs"
	"github.com/aretw0/bptrack/pkg/core"
)

// New opens the store at uri and returns a loaded Service.
//
//	svc, err := platform.New("bp_data.json", platform.WithVersioning(true))
//
// The uri is adapter-specific (the store file path for "fs").
func New(uri string, opts ...Option) (*core.Service, error) {
	repo, err := Init(uri, opts...)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	svcOpts := []core.ServiceOption{core.WithServiceLogger(o.logger)}
	if o.clock != nil {
		svcOpts = append(svcOpts, core.WithClock(o.clock))
	}

	service := core.NewService(repo, svcOpts...)
	if err := service.Load(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to load readings: %w", err)
	}
	return service, nil
}

// Init builds and initializes the repository described by uri and opts.
func Init(uri string, opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.repository != nil {
		return o.repository, nil
	}

	var repo core.Repository
	switch o.adapter {
	case "fs":
		repo = initFS(uri, o)
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}

	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func initFS(path string, o *options) *fs.Repository {
	autoInit := true
	if val, ok := o.config["auto_init"].(bool); ok {
		autoInit = val
	}
	versioned, _ := o.config["versioned"].(bool)
	mustExist, _ := o.config["must_exist"].(bool)
	readOnly, _ := o.config["read_only"].(bool)
	watchPattern, _ := o.config["watch_pattern"].(string)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	if path == "" {
		path = fs.DefaultFilename
	}

	if o.logger != nil {
		o.logger.Debug("opening store", "path", path, "versioned", versioned, "read_only", readOnly)
	}

	return fs.NewRepository(fs.Config{
		Path:         path,
		AutoInit:     autoInit,
		Versioned:    versioned,
		MustExist:    mustExist,
		ReadOnly:     readOnly,
		Logger:       o.logger,
		WatchPattern: watchPattern,
		ErrorHandler: errorHandler,
	})
}
