package main

import (
	"log/slog"

	"github.com/docverify/docverify/internal/config"
	"github.com/docverify/docverify/internal/notify"
	"github.com/docverify/docverify/internal/schema"
)

// sendNotifications delivers a validation outcome to every configured
// target. Without configured targets it is a no-op.
func sendNotifications(cfg *config.Config, path string, result schema.ValidationResult, logger *slog.Logger) error {
	if len(cfg.Notify) == 0 {
		logger.Debug("no notify targets configured")
		return nil
	}

	data := notify.BuildTemplateData(cfg.Hostname, path, result)

	refs := make([]notify.Ref, len(cfg.Notify))
	for i, t := range cfg.Notify {
		refs[i] = notify.Ref{ServiceName: t.Service, Template: t.Template, Params: t.Params}
	}
	svcs := make(map[string]notify.ServiceDef, len(cfg.Services))
	for name, svc := range cfg.Services {
		svcs[name] = notify.ServiceDef{URL: svc.URL, Params: svc.Params}
	}

	targets, err := notify.ResolveTargets(refs, svcs, cfg.Template, data)
	if err != nil {
		return err
	}

	for _, t := range targets {
		logger.Info("sending notification", "service", t.ServiceName)
		if err := notify.Send(t); err != nil {
			return err
		}
	}
	return nil
}

// shouldNotify applies the watch.on filter to an outcome.
func shouldNotify(on string, result schema.ValidationResult) bool {
	switch on {
	case "always":
		return true
	case "error":
		return result.Status == schema.StatusError
	default: // "issues"
		return result.Status != schema.StatusOK
	}
}
