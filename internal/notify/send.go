package notify

import (
	"fmt"

	"github.com/nicholas-fedor/shoutrrr"
	"github.com/nicholas-fedor/shoutrrr/pkg/types"
)

// Target holds a fully resolved notification target ready to send.
type Target struct {
	ServiceName string
	URL         string
	Message     string
	Params      map[string]string
}

// Ref is a notify target reference: a service name plus optional template
// and param overrides.
type Ref struct {
	ServiceName string
	Template    string
	Params      map[string]string
}

// ServiceDef is a delivery endpoint definition.
type ServiceDef struct {
	URL    string
	Params map[string]string
}

// ResolveTargets builds the list of notification targets from the notify
// list, service definitions, and template data. It renders the message
// template and param value templates for each target.
func ResolveTargets(
	notifyList []Ref,
	services map[string]ServiceDef,
	defaultTemplate string,
	data TemplateData,
) ([]Target, error) {
	var targets []Target

	for _, ref := range notifyList {
		svc, ok := services[ref.ServiceName]
		if !ok {
			return nil, fmt.Errorf("unknown service %q", ref.ServiceName)
		}

		// Pick template: per-target override → default.
		tmplStr := defaultTemplate
		if ref.Template != "" {
			tmplStr = ref.Template
		}

		msg, err := Render(tmplStr, data)
		if err != nil {
			return nil, fmt.Errorf("rendering template for %s: %w", ref.ServiceName, err)
		}

		// Merge params: service base ← per-target override.
		merged := make(map[string]string)
		for k, v := range svc.Params {
			merged[k] = v
		}
		for k, v := range ref.Params {
			merged[k] = v
		}

		// Render template vars inside param values.
		for k, v := range merged {
			rendered, err := Render(v, data)
			if err != nil {
				return nil, fmt.Errorf("rendering param %q for %s: %w", k, ref.ServiceName, err)
			}
			merged[k] = rendered
		}

		targets = append(targets, Target{
			ServiceName: ref.ServiceName,
			URL:         svc.URL,
			Message:     msg,
			Params:      merged,
		})
	}

	return targets, nil
}

// Validate checks that a target's URL is routable without sending anything.
// Used by dry runs.
func Validate(t Target) error {
	if _, err := shoutrrr.CreateSender(t.URL); err != nil {
		return fmt.Errorf("invalid service URL for %s: %w", t.ServiceName, err)
	}
	return nil
}

// Send delivers a notification to a single target via Shoutrrr.
func Send(t Target) error {
	sender, err := shoutrrr.CreateSender(t.URL)
	if err != nil {
		return fmt.Errorf("creating sender for %s: %w", t.ServiceName, err)
	}

	params := types.Params(t.Params)
	errs := sender.Send(t.Message, &params)
	for _, e := range errs {
		if e != nil {
			return fmt.Errorf("sending to %s: %w", t.ServiceName, e)
		}
	}

	return nil
}
