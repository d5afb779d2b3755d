// Package logger provides adapters for popular logger libraries to work with memtree's Logger interface.
//
// The adapters allow you to use your existing logger with memtree without writing boilerplate.
// Note that the standard library's slog.Logger already implements memtree.Logger directly.
//
// Example with zap:
//
//	import (
//	    "memtree"
//	    "memtree/logger"
//	    "go.uber.org/zap"
//	)
//
//	func main() {
//	    zapLogger, _ := zap.NewProduction()
//
//	    tree, err := memtree.NewOrdered[int](8,
//	        memtree.WithLogger[int](logger.NewZap(zapLogger)),
//	    )
//	    if err != nil {
//	        panic(err)
//	    }
//	    _ = tree
//	}
package logger
