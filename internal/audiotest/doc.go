// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic sources and WAV fixtures for tests.
package audiotest
