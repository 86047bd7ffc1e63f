package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	ann "github.com/LaurianeGelebart/ArtificialNeuralNetworks"
	"github.com/LaurianeGelebart/ArtificialNeuralNetworks/gtp"
)

var (
	iters = flag.Int("iters", 5000, "training epochs per run")
	seed  = flag.Int64("seed", 1337, "seed of the weight initialization")
)

func main() {
	flag.Parse()

	conf := ann.DefaultConfig()
	conf.NNConf.Iterations = *iters
	conf.NNConf.Seed = *seed
	conf.NNConf.LogEvery = 0

	d, err := ann.New(nil, conf)
	if err != nil {
		log.Fatalf("%+v", err)
	}
	defer d.Close()
	if err = d.Run(); err != nil {
		log.Fatalf("%+v", err)
	}
	fmt.Println(d)

	in, out := gtp.New(d, conf.Name, "1", nil).Start()
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		in <- scanner.Text()
		reply, ok := <-out
		if !ok {
			return
		}
		fmt.Print(reply)
		if strings.HasSuffix(strings.TrimSpace(reply), "QUIT") {
			return
		}
	}
	if err = scanner.Err(); err != nil {
		log.Fatal(err)
	}
}
