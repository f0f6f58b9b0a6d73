package service

import "sync"

const (
	braintreeClientScript = "https://js.braintreegateway.com/web/3.85.2/js/client.min.js"
	braintreeDropinScript = "https://js.braintreegateway.com/web/dropin/1.25.0/js/dropin.min.js"
)

// ScriptRegistry collects the external scripts pages must include.
type ScriptRegistry struct {
	mu      sync.Mutex
	scripts []string
}

func NewScriptRegistry() *ScriptRegistry {
	return &ScriptRegistry{}
}

func (r *ScriptRegistry) AddLinkScript(src string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scripts = append(r.scripts, src)
}

func (r *ScriptRegistry) Scripts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.scripts))
	copy(out, r.scripts)
	return out
}
