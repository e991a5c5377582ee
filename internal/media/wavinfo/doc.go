// Package wavinfo validates extracted WAV artifacts before they are handed
// to the transcription backend.
package wavinfo
