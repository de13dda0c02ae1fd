// Command run_tests drives a running ontograph server through a small
// ontology: it creates a project, posts triples, and checks the axiom, query,
// path and delete endpoints.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

var baseURL = "http://localhost:8080"

const ns = "http://example.org/pizza#"

const ontology = `
<http://example.org/pizza#Pizza> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Class> .
<http://example.org/pizza#Margherita> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Class> .
<http://example.org/pizza#Hawaiian> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Class> .
<http://example.org/pizza#Margherita> <http://www.w3.org/2000/01/rdf-schema#subClassOf> <http://example.org/pizza#Pizza> .
<http://example.org/pizza#Hawaiian> <http://www.w3.org/2000/01/rdf-schema#subClassOf> <http://example.org/pizza#Pizza> .
<http://example.org/pizza#Margherita> <http://www.w3.org/2002/07/owl#disjointWith> <http://example.org/pizza#Hawaiian> .
`

func main() {
	if v := os.Getenv("ONTOGRAPH_URL"); v != "" {
		baseURL = strings.TrimSuffix(v, "/")
	}
	fmt.Println("🚀 Starting ontograph Integration Tests...")

	if err := waitForServer(); err != nil {
		fmt.Printf("❌ Server not ready: %v\n", err)
		os.Exit(1)
	}

	project := fmt.Sprintf("it-%d", time.Now().Unix())
	failures := 0
	for _, tc := range []struct {
		name string
		run  func(string) error
	}{
		{"INT-01 create project", runCreate},
		{"INT-02 load triples", runLoad},
		{"INT-03 read axioms", runAxioms},
		{"INT-04 query", runQuery},
		{"INT-05 path", runPath},
		{"INT-06 delete triple", runDelete},
	} {
		start := time.Now()
		if err := tc.run(project); err != nil {
			fmt.Printf("❌ %s Failed: %v\n", tc.name, err)
			failures++
			continue
		}
		fmt.Printf("✅ %s Passed (%v)\n", tc.name, time.Since(start).Round(time.Millisecond))
	}

	if failures > 0 {
		fmt.Printf("\n💀 %d Tests Failed\n", failures)
		os.Exit(1)
	}
	fmt.Println("\n🎉 All Tests Passed!")
}

func waitForServer() error {
	for range 30 {
		resp, err := http.Get(baseURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(1 * time.Second)
		fmt.Print(".")
	}
	return fmt.Errorf("timeout waiting for server")
}

// call sends a request and decodes the JSON response into out.
func call(method, path string, query url.Values, body io.Reader, out any) error {
	req, err := http.NewRequest(method, baseURL+path+"?"+query.Encode(), body)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(b))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func runCreate(project string) error {
	body, _ := json.Marshal(map[string]string{"id": project, "name": "Integration", "description": "pizza"})
	return call(http.MethodPost, "/v1/projects", nil, bytes.NewReader(body), nil)
}

func runLoad(project string) error {
	var result struct {
		Added int `json:"added"`
	}
	q := url.Values{"project": {project}}
	if err := call(http.MethodPost, "/v1/triples", q, strings.NewReader(ontology), &result); err != nil {
		return err
	}
	if result.Added != 6 {
		return fmt.Errorf("added %d triples, want 6", result.Added)
	}
	return nil
}

func runAxioms(project string) error {
	var result struct {
		Count int `json:"count"`
	}
	q := url.Values{"project": {project}}
	if err := call(http.MethodGet, "/v1/axioms/SubClassOf", q, nil, &result); err != nil {
		return err
	}
	if result.Count != 2 {
		return fmt.Errorf("got %d SubClassOf axioms, want 2", result.Count)
	}
	return nil
}

func runQuery(project string) error {
	body, _ := json.Marshal(map[string]any{
		"query": fmt.Sprintf("triples(?c, <http://www.w3.org/2000/01/rdf-schema#subClassOf>, <%sPizza>)", ns),
	})
	var result struct {
		Results []map[string]string `json:"results"`
	}
	q := url.Values{"project": {project}}
	if err := call(http.MethodPost, "/v1/query", q, bytes.NewReader(body), &result); err != nil {
		return err
	}
	if len(result.Results) != 2 {
		return fmt.Errorf("got %d rows, want 2", len(result.Results))
	}
	return nil
}

func runPath(project string) error {
	var result struct {
		Nodes []any `json:"nodes"`
	}
	q := url.Values{"project": {project}, "start": {ns + "Margherita"}, "end": {ns + "Hawaiian"}}
	if err := call(http.MethodGet, "/v1/path", q, nil, &result); err != nil {
		return err
	}
	if len(result.Nodes) == 0 {
		return fmt.Errorf("no path found (0 nodes)")
	}
	fmt.Printf("   INT-05 Path Length: %d\n", len(result.Nodes))
	return nil
}

func runDelete(project string) error {
	disjoint := fmt.Sprintf("<%sMargherita> <http://www.w3.org/2002/07/owl#disjointWith> <%sHawaiian> .\n", ns, ns)
	q := url.Values{"project": {project}}
	if err := call(http.MethodDelete, "/v1/triples", q, strings.NewReader(disjoint), nil); err != nil {
		return err
	}
	var result struct {
		Count int `json:"count"`
	}
	if err := call(http.MethodGet, "/v1/axioms/DisjointClasses", q, nil, &result); err != nil {
		return err
	}
	if result.Count != 0 {
		return fmt.Errorf("got %d DisjointClasses axioms after delete, want 0", result.Count)
	}
	return nil
}
