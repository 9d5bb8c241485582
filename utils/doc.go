// SPDX-License-Identifier: EPL-2.0

// Package utils holds the per-sample arithmetic shared by the decoders and the
// normalizer: PCM scaling, symmetric requantization, and interpolation kernels.
package utils
