package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	log "github.com/golang/glog"
	"github.com/joho/godotenv"

	"github.com/bobonovski/topicapi/classifier"
	"github.com/bobonovski/topicapi/config"
)

var (
	configFile = flag.String("config", "config.yaml", "path to YAML config file, defaults apply if missing")
	trained    = flag.Bool("trained", true, "load the persisted model instead of training a new one")
	topicModel = flag.String("model", classifier.DefaultAlgorithm, "model type, lsi or lda")
	topicNum   = flag.Int("k", classifier.DefaultTopics, "number of topics to train")
	dimension  = flag.Int("dim", classifier.DefaultDimension, "maximum number of topics per result")
	showTopics = flag.Int("topics", 0, "print the top terms of the first N topics and exit")
	topTerms   = flag.Int("terms", 10, "number of terms printed per topic")
	text       = flag.String("text", "", "text to classify, one line per document is read from stdin if empty")
)

func main() {
	flag.Parse()
	defer log.Flush()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warningf("reading .env: %v", err)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Exitf("failed to load config: %v", err)
	}

	c, err := classifier.New(cfg, classifier.Options{
		Trained:   *trained,
		Algorithm: *topicModel,
		Topics:    *topicNum,
	})
	if err != nil {
		log.Exitf("%v", err)
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if *showTopics > 0 {
		topics, err := c.Topics(*showTopics, *topTerms)
		if err != nil {
			log.Exitf("%v", err)
		}
		for k, terms := range topics {
			parts := make([]string, 0, len(terms))
			for _, t := range terms {
				parts = append(parts, fmt.Sprintf("%.3f*%q", t.Weight, t.Term))
			}
			fmt.Fprintf(out, "%d: %s\n", k, strings.Join(parts, " + "))
		}
		return
	}

	if *text != "" {
		printTopics(out, c.Classify(*text, *dimension))
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		printTopics(out, c.Classify(scanner.Text(), *dimension))
	}
	if err := scanner.Err(); err != nil {
		log.Errorf("reading stdin: %v", err)
	}
}

func printTopics(out *bufio.Writer, topics []classifier.TopicScore) {
	parts := make([]string, 0, len(topics))
	for _, t := range topics {
		parts = append(parts, fmt.Sprintf("%d:%.6f", t.Id, t.Weight))
	}
	fmt.Fprintln(out, strings.Join(parts, " "))
}
