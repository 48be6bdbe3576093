/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	UserAgent = "boylstonchessclub-pairings/0.1.0 (+https://github.com/mikeb26/boylstonchessclub-pairings)"

	// DefaultWebCacheBucket is the S3 bucket backing the shared http cache
	// when no bucket is configured explicitly.
	DefaultWebCacheBucket = "bopmatic-boylstonchessclub-pairings-webcache"
)
