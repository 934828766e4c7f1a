// Package normalisers provides implementations of the Normaliser interface.
// A normaliser decodes an uploaded file into a document whose content is
// ready for chunking.
package normalisers
