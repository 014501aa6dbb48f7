package engine

import (
	"fmt"
	"reflect"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

var (
	recognitionModeType = reflect.TypeOf(domain.RecognitionOff)
	acceptanceModeType  = reflect.TypeOf(domain.AcceptByFinalState)
)

// DecodeMeta decodes meta into out, a pointer to one of the typed meta views.
// Numbers given as float64 or strings are accepted for integer fields.
// On error, out still holds every field that decoded cleanly and the
// error wraps domain.ErrInvalidMeta.
func DecodeMeta(meta domain.Meta, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			recognitionModeHook,
			acceptanceModeHook,
		),
		WeaklyTypedInput: true,
		Result:           out,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	if meta == nil {
		return nil
	}
	if err := decoder.Decode(map[string]any(meta)); err != nil {
		// mapstructure flattens hook errors to strings.
		return fmt.Errorf("%w: %v", domain.ErrInvalidMeta, err)
	}
	return nil
}

// recognitionModeHook maps the accepted recognitionMode values onto RecognitionMode.
func recognitionModeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != recognitionModeType {
		return data, nil
	}
	mode, err := domain.ParseRecognitionMode(data)
	if err != nil {
		return nil, err
	}
	return string(mode), nil
}

func acceptanceModeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != acceptanceModeType {
		return data, nil
	}
	mode, err := domain.ParseAcceptanceMode(data)
	if err != nil {
		return nil, err
	}
	return string(mode), nil
}

// NFAMeta returns the NFA view of meta with defaults applied.
func NFAMeta(meta domain.Meta) (domain.NFAMeta, error) {
	var m domain.NFAMeta
	err := DecodeMeta(meta, &m)
	return m.WithDefaults(), err
}

// PDAMeta returns the PDA view of meta with defaults applied.
func PDAMeta(meta domain.Meta) (domain.PDAMeta, error) {
	var m domain.PDAMeta
	err := DecodeMeta(meta, &m)
	return m.WithDefaults(), err
}

// TuringMeta returns the Turing view of meta with defaults applied.
func TuringMeta(meta domain.Meta) (domain.TuringMeta, error) {
	var m domain.TuringMeta
	err := DecodeMeta(meta, &m)
	return m.WithDefaults(), err
}

// TransducerMeta returns the Mealy/Moore view of meta.
func TransducerMeta(meta domain.Meta) (domain.TransducerMeta, error) {
	var m domain.TransducerMeta
	err := DecodeMeta(meta, &m)
	return m, err
}
