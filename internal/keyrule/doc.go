// Package keyrule decides which grouping key a file name contributes to the
// image index.
//
// A Rule is either "no rule" (the key is the file name without extension)
// or a compiled pattern whose first capture group is the key. When a
// pattern does not match a file name, the rule's NoMatchPolicy applies:
// UseFullName falls back to the name without extension, Skip drops the file.
//
//	rule, err := keyrule.Compile(keyrule.DefaultPattern, keyrule.UseFullName)
//	key, ok := rule.Key("img_00123.png") // "00123", true
package keyrule
