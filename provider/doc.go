// Package provider is a small generic framework for swappable backends.
//
// A Registry maps names to factories; a Manager initializes the configured
// ones and hands out the default:
//
//	reg := provider.NewRegistry[transcription.Provider]()
//	reg.RegisterFactory("whisper", func() (transcription.Provider, error) {
//	    return whisper.New(cfg.Whisper, log)
//	})
//	mgr := provider.NewManager(reg, nil, log)
//	_ = mgr.Initialize("whisper")
//	_ = mgr.SetDefault("whisper")
//	p, _ := mgr.Get(ctx)
package provider
