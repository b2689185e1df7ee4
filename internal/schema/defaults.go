package schema

// ApplyDefaults returns a new argument map with declared defaults filled in
// for properties strictly absent from args. A present-but-falsy value
// (false, 0, "") is never overwritten. The caller's map is not mutated.
// Defaults are trusted as authored and are not re-validated; this runs only
// after validation succeeds.
// A nil descriptor declares nothing and yields a plain copy.
func ApplyDefaults(d *Descriptor, args map[string]any) map[string]any {
	if d == nil {
		out := make(map[string]any, len(args))
		for k, v := range args {
			out[k] = v
		}
		return out
	}
	out := make(map[string]any, len(args)+len(d.InputSchema.Properties))
	for k, v := range args {
		out[k] = v
	}
	for name, prop := range d.InputSchema.Properties {
		if prop.Default == nil {
			continue
		}
		if _, present := out[name]; present {
			continue
		}
		out[name] = prop.Default
	}
	return out
}
