// Package logger provides structured logging over zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Init(cfg.Logging).WithComponent("adapter")
//	log.Debug("dispatch", logger.Fields(logger.FieldCallID, id, logger.FieldKind, "upload"))
package logger
