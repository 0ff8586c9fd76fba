// Package maven downloads descriptors (POM files) from Maven-layout
// repositories such as Maven Central or Google's Maven repository.
//
// # Usage
//
//	client := maven.NewClient(store, 24*time.Hour, maven.CentralURL, "https://maven.google.com")
//	d, err := client.FetchDescriptor(ctx, coord.New("com.squareup.okio", "okio", "3.6.0"), false)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(d.URL)
//
// # Repository Layout
//
// A coordinate maps to
//
//	<repository>/<group path>/<artifact>/<version>/<artifact>-<version>.pom
//
// where the group path replaces dots with slashes.
//
// # Caching
//
// Downloads are cached per repository and coordinate. Released artifacts are
// immutable, so long TTLs are safe. Pass refresh=true to bypass the cache.
package maven
