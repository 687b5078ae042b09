package util

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/exp/constraints"
)

func CreateFolder(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0755)
}

// EnsureParentDir creates the directory a file will be written into.
func EnsureParentDir(path string) error {
	return CreateFolder(filepath.Dir(path))
}

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

func ReadJSONFile[A any](path string) (A, error) {
	var data A
	raw, err := os.ReadFile(path)
	if err != nil {
		return data, fmt.Errorf("could not read %v: %w", path, err)
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return data, fmt.Errorf("could not decode %v: %w", path, err)
	}
	return data, nil
}

func Max[A constraints.Ordered](num1 A, num2 A) A {
	if num1 < num2 {
		return num2
	}
	return num1
}

func Min[A constraints.Ordered](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}

// Unique returns nums without repeats, keeping first occurrences in order.
func Unique[A comparable](nums []A) []A {
	seen := make(map[A]bool, len(nums))
	res := make([]A, 0, len(nums))
	for _, v := range nums {
		if !seen[v] {
			seen[v] = true
			res = append(res, v)
		}
	}
	return res
}
