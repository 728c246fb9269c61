// Package logger is fetchkit's zerolog wrapper.
//
// Init configures the global logger from a logging section; Get hands out
// component loggers tagged with a "component" field that follow the global
// logger. The HTTP client logs through logger.Get("httpclient") unless
// httpclient.WithLogger injects another one.
//
//	logging:
//	  level: debug
//	  format: json
//	  output: stderr
package logger
