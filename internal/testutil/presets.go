package testutil

import "strconv"

// Device and port paths used by WithStandardRig.
const (
	CaptureDevice  = "alsa_input.usb-interface"
	PlaybackDevice = "alsa_output.usb-interface"
)

// CapturePath returns the path of capture port n of CaptureDevice.
func CapturePath(n int) string {
	return CaptureDevice + ":capture_" + strconv.Itoa(n)
}

// PlaybackPath returns the path of playback port n of PlaybackDevice.
func PlaybackPath(n int) string {
	return PlaybackDevice + ":playback_" + strconv.Itoa(n)
}

// WithStandardRig adds an eight-channel interface, one input per group bus
// plus an unpatched input, and a main output pair.
func (s *Studio) WithStandardRig() *Studio {
	capture := make([]string, 8)
	for i := range capture {
		capture[i] = CapturePath(i + 1)
	}
	return s.
		WithDevice(CaptureDevice, capture...).
		WithDevice(PlaybackDevice, PlaybackPath(1), PlaybackPath(2)).
		WithInput("Kick", Mono(CapturePath(1)), Group("Drums")).
		WithInput("Bass DI", Mono(CapturePath(2)), Group("Bass")).
		WithInput("Keys", Stereo(CapturePath(3), CapturePath(4)), Group("Melody")).
		WithInput("Pad", Stereo(CapturePath(5), CapturePath(6)), Group("Atmos")).
		WithInput("Talkback", Unpatched(), Group("Atmos")).
		WithOutput("Main", PlaybackPath(1), PlaybackPath(2))
}
