package changeset

import (
	"bytes"

	"github.com/jonathan/resume-diff/internal/resume"
	"github.com/tidwall/gjson"
)

// camelAliases maps producer field names to the camelCase names some
// backends re-key them to.
var camelAliases = map[string]string{
	FieldTypeChanges:   "typeChanges",
	FieldValuesChanged: "valuesChanged",
	FieldItemsAdded:    "itemsAdded",
	FieldItemsRemoved:  "itemsRemoved",
}

// recordKeys are the keys that make an object a change record rather than a
// bare added/removed item.
var recordKeys = map[string]bool{
	"old_value": true,
	"new_value": true,
	"old_type":  true,
	"new_type":  true,
}

// Parse decodes a change-set document. An empty document or JSON null is an
// empty change-set. Entries that do not carry the fields their mapping needs
// are reported in Raw.Malformed instead of failing the whole document.
func Parse(data []byte) (*Raw, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return &Raw{}, nil
	}
	if !gjson.ValidBytes(trimmed) {
		return nil, &ParseError{Message: "change-set is not valid JSON"}
	}
	return FromResult(gjson.ParseBytes(trimmed))
}

// FromResult decodes a change-set that is already parsed, for example the
// "changes" member of a larger response.
func FromResult(doc gjson.Result) (*Raw, error) {
	raw := &Raw{}
	if !doc.Exists() || doc.Type == gjson.Null {
		return raw, nil
	}
	if !doc.IsObject() {
		return nil, &ParseError{Message: "change-set must be a JSON object"}
	}

	raw.TypeChanges = decodeField(doc, FieldTypeChanges, decodeTypeChange, &raw.Malformed)
	raw.ValuesChanged = decodeField(doc, FieldValuesChanged, decodeValueChange, &raw.Malformed)
	raw.ItemsAdded = decodeField(doc, FieldItemsAdded, decodeItem("new_value"), &raw.Malformed)
	raw.ItemsRemoved = decodeField(doc, FieldItemsRemoved, decodeItem("old_value"), &raw.Malformed)
	return raw, nil
}

type recordDecoder func(entry gjson.Result) (Record, string)

func decodeField(doc gjson.Result, field string, decode recordDecoder, malformed *[]Skipped) []RawEntry {
	section := doc.Get(field)
	if !section.Exists() {
		section = doc.Get(camelAliases[field])
	}
	if !section.Exists() || section.Type == gjson.Null {
		return nil
	}
	if !section.IsObject() {
		*malformed = append(*malformed, Skipped{Field: field, Reason: "expected an object keyed by path"})
		return nil
	}

	var entries []RawEntry
	section.ForEach(func(key, value gjson.Result) bool {
		record, problem := decode(value)
		if problem != "" {
			*malformed = append(*malformed, Skipped{Field: field, Path: key.String(), Reason: problem})
			return true
		}
		entries = append(entries, RawEntry{Path: key.String(), Record: record})
		return true
	})
	return entries
}

func decodeTypeChange(entry gjson.Result) (Record, string) {
	if !entry.IsObject() {
		return Record{}, "type change must be an object"
	}
	oldType, newType := entry.Get("old_type"), entry.Get("new_type")
	if oldType.Type != gjson.String || newType.Type != gjson.String {
		return Record{}, "type change needs old_type and new_type"
	}
	return Record{
		OldType:  oldType.Str,
		NewType:  newType.Str,
		OldValue: resume.FromResult(entry.Get("old_value")),
		NewValue: resume.FromResult(entry.Get("new_value")),
	}, ""
}

func decodeValueChange(entry gjson.Result) (Record, string) {
	if !entry.IsObject() {
		return Record{}, "value change must be an object"
	}
	oldValue, newValue := entry.Get("old_value"), entry.Get("new_value")
	if !oldValue.Exists() || !newValue.Exists() {
		return Record{}, "value change needs old_value and new_value"
	}
	return Record{
		OldValue: resume.FromResult(oldValue),
		NewValue: resume.FromResult(newValue),
	}, ""
}

// decodeItem accepts either a record carrying valueKey or the bare item.
func decodeItem(valueKey string) recordDecoder {
	return func(entry gjson.Result) (Record, string) {
		if !isRecord(entry) {
			v := resume.FromResult(entry)
			if valueKey == "old_value" {
				return Record{OldValue: v}, ""
			}
			return Record{NewValue: v}, ""
		}
		item := entry.Get(valueKey)
		if !item.Exists() {
			return Record{}, "item record needs " + valueKey
		}
		record := Record{
			OldValue: resume.FromResult(entry.Get("old_value")),
			NewValue: resume.FromResult(entry.Get("new_value")),
		}
		return record, ""
	}
}

func isRecord(entry gjson.Result) bool {
	if !entry.IsObject() {
		return false
	}
	keys := 0
	onlyRecordKeys := true
	entry.ForEach(func(key, _ gjson.Result) bool {
		keys++
		if !recordKeys[key.String()] {
			onlyRecordKeys = false
			return false
		}
		return true
	})
	return keys > 0 && onlyRecordKeys
}
