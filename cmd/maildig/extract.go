// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/siemens/maildig/pipeline"
	"github.com/thediveo/lxkns/log"
)

// emailCandidate deliberately matches more than just well-formed e-mail
// addresses, so that the validation stages get to see the odd ones too. The
// domain part never ends in a dot, so addresses ending a sentence don't drag
// the full stop along.
var emailCandidate = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9_-]+(?:\.[a-zA-Z0-9_-]+)*`)

// extractEmails returns all e-mail candidates found in the specified reader,
// in order of appearance and including duplicates.
func extractEmails(r io.Reader) ([]string, error) {
	emails := []string{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		emails = append(emails, emailCandidate.FindAllString(scanner.Text(), -1)...)
	}
	return emails, scanner.Err()
}

// extractPairs extracts the e-mail candidates from the specified files,
// using the base names of the files as the source names. Files with identical
// contents count as a single source, named after all these files.
func extractPairs(paths []string) ([]pipeline.Pair, error) {
	type source struct {
		names  []string
		emails []string
	}
	sources := []*source{}
	byDigest := map[[sha256.Size]byte]*source{}
	for _, path := range paths {
		contents, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read input file: %w", err)
		}
		digest := sha256.Sum256(contents)
		if src, ok := byDigest[digest]; ok {
			log.Debugf("%s duplicates an earlier input file", path)
			src.names = append(src.names, filepath.Base(path))
			continue
		}
		emails, err := extractEmails(bytes.NewReader(contents))
		if err != nil {
			return nil, fmt.Errorf("cannot scan input file %s: %w", path, err)
		}
		log.Debugf("found %d e-mail candidates in %s", len(emails), path)
		src := &source{names: []string{filepath.Base(path)}, emails: emails}
		byDigest[digest] = src
		sources = append(sources, src)
	}
	pairs := []pipeline.Pair{}
	for _, src := range sources {
		name := pipeline.JoinSources(src.names...)
		for _, email := range src.emails {
			pairs = append(pairs, pipeline.Pair{Email: email, SourceFile: name})
		}
	}
	return pairs, nil
}
