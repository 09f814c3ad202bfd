// pkg/registry/schema.go
package registry

// ActivityRegistry describes the service tasks this module implements, for BPMN modellers
// and for the worker manager's /activities endpoint.
type ActivityRegistry struct {
	Version    string     `json:"version" yaml:"version"`
	Activities []Activity `json:"activities" yaml:"activities"`
}

type Activity struct {
	ID           string                 `json:"id" yaml:"id"`
	DisplayName  string                 `json:"displayName" yaml:"displayName"`
	Description  string                 `json:"description" yaml:"description"`
	Category     string                 `json:"category" yaml:"category"`
	Version      string                 `json:"version" yaml:"version"`
	TaskType     string                 `json:"taskType" yaml:"taskType"`
	InputSchema  map[string]interface{} `json:"inputSchema" yaml:"inputSchema"`
	OutputSchema map[string]interface{} `json:"outputSchema" yaml:"outputSchema"`
	ErrorCodes   []string               `json:"errorCodes" yaml:"errorCodes"`
	Timeout      string                 `json:"timeout" yaml:"timeout"`
	Retries      int                    `json:"retries" yaml:"retries"`
	Tags         []string               `json:"tags,omitempty" yaml:"tags,omitempty"`
}
