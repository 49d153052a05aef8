// Package pipeline runs the per-deck processing steps in sequence.
//
// One deck URL becomes a model.Job that passes through normalize, fetch,
// extract, format, save, clipboard and export steps. Each step reads what
// earlier steps left on the job and adds its own result.
//
// Normalize, fetch, extract and format are critical: when one of them fails
// the job stops. Save, clipboard and export record their errors on the job
// and let later steps run, so a deck that cannot be saved still reaches the
// clipboard.
package pipeline
