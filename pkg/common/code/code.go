package code

import (
	"errors"
	"fmt"
)

// Code is a stable business error number. A bare code is itself an error;
// WithMsg, WithMsgf and WithErr derive richer errors that still satisfy
// errors.Is against the bare code.
type Code int

const Success Code = 0

// 通用错误
const (
	UnDefineErr Code = 100000
	ParamErr    Code = 100001
)

// 远程调用错误
const (
	RPCHttpErr         Code = 120001
	RPCHttpCodeErr     Code = 120002
	RPCHttpCodeRespErr Code = 120003
)

// 化合物缓存错误
const (
	CompoundNotFound Code = 130001
	CompoundQueryErr Code = 130002
	NamespaceErr     Code = 130003
	CacheFileErr     Code = 130004
	CacheFormatErr   Code = 130005
	CacheSaveErr     Code = 130006
	PrefetchErr      Code = 130007
)

var messages = map[Code]string{
	Success:            "success",
	UnDefineErr:        "undefined error",
	ParamErr:           "invalid parameter",
	RPCHttpErr:         "remote call failed",
	RPCHttpCodeErr:     "remote returned unexpected status",
	RPCHttpCodeRespErr: "remote returned unexpected payload",
	CompoundNotFound:   "compound not found",
	CompoundQueryErr:   "compound query failed",
	NamespaceErr:       "unknown compound namespace",
	CacheFileErr:       "cache file unreadable",
	CacheFormatErr:     "cache file malformed",
	CacheSaveErr:       "cache file write failed",
	PrefetchErr:        "prefetch incomplete",
}

func (c Code) String() string {
	if msg, ok := messages[c]; ok {
		return msg
	}
	return fmt.Sprintf("code %d", int(c))
}

func (c Code) Error() string {
	return fmt.Sprintf("[%d] %s", int(c), c.String())
}

// WithMsg attaches a detail message to the code.
func (c Code) WithMsg(msg string) error {
	return &withDetail{code: c, msg: msg}
}

// WithMsgf attaches a formatted detail message to the code.
func (c Code) WithMsgf(format string, args ...any) error {
	return &withDetail{code: c, msg: fmt.Sprintf(format, args...)}
}

// WithErr attaches a cause to the code. The cause stays reachable through
// errors.Is and errors.As.
func (c Code) WithErr(err error) error {
	return &withDetail{code: c, err: err}
}

type withDetail struct {
	code Code
	msg  string
	err  error
}

func (e *withDetail) Error() string {
	switch {
	case e.msg != "" && e.err != nil:
		return fmt.Sprintf("%s: %s: %v", e.code.Error(), e.msg, e.err)
	case e.msg != "":
		return fmt.Sprintf("%s: %s", e.code.Error(), e.msg)
	case e.err != nil:
		return fmt.Sprintf("%s: %v", e.code.Error(), e.err)
	default:
		return e.code.Error()
	}
}

func (e *withDetail) Unwrap() []error {
	if e.err != nil {
		return []error{e.code, e.err}
	}
	return []error{e.code}
}

// FromError reports the code carried anywhere in err's chain, Success for
// nil and UnDefineErr for errors without one.
func FromError(err error) Code {
	if err == nil {
		return Success
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	return UnDefineErr
}

// Msg reports the human message for err: the detail when one was attached,
// the code text otherwise.
func Msg(err error) string {
	if err == nil {
		return messages[Success]
	}
	var d *withDetail
	if errors.As(err, &d) && d.msg != "" {
		return d.msg
	}
	if d != nil && d.err != nil {
		return d.err.Error()
	}
	return FromError(err).String()
}
