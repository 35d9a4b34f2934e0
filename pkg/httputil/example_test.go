package httputil_test

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/lockgemfile/pkg/httputil"
)

func ExampleCache_Namespace() {
	dir := filepath.Join(os.TempDir(), "lockgemfile-example")
	defer os.RemoveAll(dir)

	cache, err := httputil.NewCache(dir, 24*time.Hour)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	gems := cache.Namespace("rubygems:")

	_ = gems.Set("versions:rails", []string{"7.0.8", "6.1.0"})

	var versions []string
	ok, err := gems.Get("versions:rails", &versions)
	fmt.Println(ok, err, versions)
	// Output:
	// true <nil> [7.0.8 6.1.0]
}
