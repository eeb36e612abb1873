// Package builtins defines the fixed set of host-provided built-in methods:
// their names, parameter types and return types. The implementations live
// with the host; the core only type checks calls against this table and
// dispatches through an interface.
package builtins

import (
	"sort"

	"github.com/deepnoodle-ai/screenscript/types"
)

// Names of the built-in methods.
const (
	Print                    = "print"
	GetJSONArray             = "getJSONArray"
	GetJSONDictionary        = "getJSONDictionary"
	GetImage                 = "getImage"
	EncodeBase64             = "encodeBase64"
	CountArray               = "countArray"
	CountDictionary          = "countDictionary"
	GetDictionaryKeys        = "getDictionaryKeys"
	AddItemToDictionary      = "addItemToDictionary"
	RemoveItemFromDictionary = "removeItemFromDictionary"
	AddItemToArray           = "addItemToArray"
	SetAppVariable           = "setAppVariable"
	GetAppVariable           = "getAppVariable"
	SetScreenVariable        = "setScreenVariable"
	GetScreenVariable        = "getScreenVariable"
)

// Signature describes the parameters and return type of a built-in.
type Signature struct {
	Name    string
	Params  []types.Type
	Returns types.Type
}

// Arity returns the number of arguments the built-in expects.
func (s Signature) Arity() int {
	return len(s.Params)
}

func sig(name string, returns types.Type, params ...types.Type) Signature {
	return Signature{Name: name, Params: params, Returns: returns}
}

var signatures = map[string]Signature{
	Print:                    sig(Print, types.String, types.Any),
	GetJSONArray:             sig(GetJSONArray, types.Array, types.String),
	GetJSONDictionary:        sig(GetJSONDictionary, types.Dictionary, types.String),
	GetImage:                 sig(GetImage, types.Image, types.String),
	EncodeBase64:             sig(EncodeBase64, types.String, types.Any),
	CountArray:               sig(CountArray, types.Integer, types.Array),
	CountDictionary:          sig(CountDictionary, types.Integer, types.Dictionary),
	GetDictionaryKeys:        sig(GetDictionaryKeys, types.Array, types.Dictionary),
	AddItemToDictionary:      sig(AddItemToDictionary, types.Dictionary, types.Dictionary, types.Any, types.Any),
	RemoveItemFromDictionary: sig(RemoveItemFromDictionary, types.Dictionary, types.Dictionary, types.Any),
	AddItemToArray:           sig(AddItemToArray, types.Array, types.Array, types.Any),
	SetAppVariable:           sig(SetAppVariable, types.Boolean, types.String, types.Any),
	GetAppVariable:           sig(GetAppVariable, types.Any, types.String),
	SetScreenVariable:        sig(SetScreenVariable, types.Boolean, types.String, types.Any),
	GetScreenVariable:        sig(GetScreenVariable, types.Any, types.String),
}

// Lookup returns the signature of the named built-in.
func Lookup(name string) (Signature, bool) {
	s, ok := signatures[name]
	return s, ok
}

// Names returns the names of all built-ins in sorted order.
func Names() []string {
	names := make([]string, 0, len(signatures))
	for name := range signatures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
