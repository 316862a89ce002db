package helpers

import (
	"fmt"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"strings"
)

/**
looks up the character set that the scheduler writes its output in.
an empty name (or any spelling of utf-8) returns nil, which means "no conversion needed"
*/
func EncodingForName(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf8", "utf-8":
		return nil, nil
	case "gbk", "cp936":
		return simplifiedchinese.GBK, nil
	case "gb18030":
		return simplifiedchinese.GB18030, nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1, nil
	default:
		return nil, fmt.Errorf("output encoding '%s' is not supported", name)
	}
}

/**
convenience wrapper to get a fresh decoder, or nil if enc is nil.
decoders carry state so each reader should get its own
*/
func NewDecoder(enc encoding.Encoding) *encoding.Decoder {
	if enc == nil {
		return nil
	}
	return enc.NewDecoder()
}

/**
converts raw command output into a utf-8 string. if the conversion fails the raw bytes are returned as-is, since
a garbled sample is more useful than none
*/
func DecodeOutput(raw []byte, enc encoding.Encoding) string {
	if enc == nil {
		return string(raw)
	}
	converted, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(converted)
}
