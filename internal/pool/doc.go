// Package pool provides pooled byte buffers for assembling encoded rows.
package pool
