// Package workers sizes bounded worker pools from the CPUs available to the
// process.
//
// The preview generator uses ForCPU to decide how many images it decodes at
// once. Set PREVIEW_WORKERS to override the computed count.
package workers
