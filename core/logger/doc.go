// Package logger builds the structured logger used across the pipeline.
package logger
