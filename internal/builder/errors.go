package builder

import "errors"

var (
	// ErrDiscovery marks a failed read of the topology (inputs, outputs,
	// plugins, ports, nodes or channel strips). It aborts the run.
	ErrDiscovery = errors.New("discovery failed")

	// ErrProvisioning marks a failed creation call to the factory or the
	// registry. It aborts the run.
	ErrProvisioning = errors.New("provisioning failed")

	// ErrLinksFailed is returned in strict mode when the run completed but
	// at least one link could not be created.
	ErrLinksFailed = errors.New("links failed")
)
