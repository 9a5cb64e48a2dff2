package testutil

import "github.com/zjrosen/pmxbuilder/internal/pmx"

// InputOption configures an input added with WithInput.
type InputOption func(*pmx.Input)

// Mono feeds the input from a single port path.
func Mono(path string) InputOption {
	return func(in *pmx.Input) {
		in.Type = pmx.InputMono
		in.LeftPortPath = path
		in.RightPortPath = ""
	}
}

// Stereo feeds the input from a left and a right port path.
func Stereo(left, right string) InputOption {
	return func(in *pmx.Input) {
		in.Type = pmx.InputStereo
		in.LeftPortPath = left
		in.RightPortPath = right
	}
}

// Unpatched marks the input as having no physical ports.
func Unpatched() InputOption {
	return func(in *pmx.Input) {
		in.Type = pmx.InputNone
		in.LeftPortPath = ""
		in.RightPortPath = ""
	}
}

// Group sets the declared group bus name.
func Group(name string) InputOption {
	return func(in *pmx.Input) {
		in.GroupName = name
	}
}
