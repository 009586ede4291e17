// ABOUTME: Audio handlers: one-shot playback and attached audio sources

package dispatch

import (
	"fmt"

	"github.com/scenebridge/unity-bridge/internal/errors"
	"github.com/scenebridge/unity-bridge/internal/scene"
)

func (d *Dispatcher) handlePlaySound(raw string) (interface{}, error) {
	var p playSoundParams
	if err := decodeParams("play_sound", raw, &p); err != nil {
		return nil, err
	}
	if p.SoundType == "" {
		return nil, errors.NewMissingField("sound_type", "play_sound")
	}

	return MessageResult{
		Success: true,
		Message: fmt.Sprintf("Played sound %s at volume %g", p.SoundType, defaultFloat(p.Volume, 1)),
	}, nil
}

func (d *Dispatcher) handleCreateAudioSource(raw string) (interface{}, error) {
	var p createAudioSourceParams
	if err := decodeParams("create_audio_source", raw, &p); err != nil {
		return nil, err
	}
	if p.ObjectName == "" {
		return nil, errors.NewMissingField("object_name", "create_audio_source")
	}
	if p.AudioType == "" {
		return nil, errors.NewMissingField("audio_type", "create_audio_source")
	}

	obj, err := d.registry.Update(p.ObjectName, func(o *scene.Object) error {
		o.Audio = append(o.Audio, scene.AudioSource{
			Clip:         p.AudioType,
			Loop:         p.Loop,
			Volume:       defaultFloat(p.Volume, 1),
			Pitch:        defaultFloat(p.Pitch, 1),
			SpatialBlend: p.SpatialBlend,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return objectResult(obj), nil
}
