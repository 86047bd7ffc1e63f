package main

import (
	"flag"
	"io/ioutil"
	"log"
	"net/http"
	"os"

	ann "github.com/LaurianeGelebart/ArtificialNeuralNetworks"
	"github.com/LaurianeGelebart/ArtificialNeuralNetworks/encoding/gif"
	"github.com/LaurianeGelebart/ArtificialNeuralNetworks/encoding/mjpeg"
	"github.com/LaurianeGelebart/ArtificialNeuralNetworks/gtp"
	shallow "github.com/LaurianeGelebart/ArtificialNeuralNetworks/shallownet"
)

var (
	input    = flag.Int("input", 4, "number of input cells per row")
	hidden   = flag.Int("hidden", 10, "number of hidden units")
	output   = flag.Int("output", 2, "number of target cells per row")
	iters    = flag.Int("iters", 5000, "training epochs per run")
	lr       = flag.Float64("lr", 0.5, "learning rate")
	momentum = flag.Float64("momentum", 0.1, "momentum")
	logEvery = flag.Int("logevery", 100, "log the epoch error every n epochs, 0 disables it")
	seed     = flag.Int64("seed", 1337, "seed of the weight initialization")
	eps      = flag.Float64("eps", 0.1, "tolerance used to shade outputs")
	verbose  = flag.Bool("v", false, "print the training log")

	gifFile = flag.String("gif", "", "write a GIF with one frame per run")
	dotFile = flag.String("dot", "", "write the trained network as a graphviz file")
	csvFile = flag.String("csv", "", "write the sampled epoch errors as CSV")
	serve   = flag.String("serve", "", "address to serve the demo at, e.g. :8080. Commands and runs go over a websocket at /ws, frames are streamed at /mjpeg")
)

// encoders fans a run out to several OutputEncoders.
type encoders []ann.OutputEncoder

func (e encoders) Encode(ms ann.MetaState) error {
	for _, enc := range e {
		if err := enc.Encode(ms); err != nil {
			return err
		}
	}
	return nil
}

func (e encoders) Flush() error {
	for _, enc := range e {
		if err := enc.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	flag.Parse()

	conf := ann.Config{
		Name:    "Shallow Network",
		NNConf:  shallow.DefaultConf(*input, *hidden, *output),
		Epsilon: float32(*eps),
	}
	conf.NNConf.Iterations = *iters
	conf.NNConf.LearningRate = float32(*lr)
	conf.NNConf.Momentum = float32(*momentum)
	conf.NNConf.LogEvery = *logEvery
	conf.NNConf.Seed = *seed

	var outEnc encoders
	var gifEnc *gif.Encoder
	if *gifFile != "" {
		f, err := os.Create(*gifFile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		gifEnc = gif.NewGifEncoder(600, 800)
		gifEnc.Writer = f
		outEnc = append(outEnc, gifEnc)
	}
	var wsEnc *Encoder
	var mjpegEnc *mjpeg.Encoder
	if *serve != "" {
		wsEnc = NewEncoder()
		mjpegEnc = mjpeg.NewEncoder(600, 800)
		outEnc = append(outEnc, wsEnc, mjpegEnc)
	}
	if len(outEnc) > 0 {
		conf.OutputEncoder = outEnc
	}

	d, err := ann.New(nil, conf)
	if err != nil {
		log.Fatalf("%+v", err)
	}
	defer d.Close()
	if err = d.Run(); err != nil {
		log.Fatalf("%+v", err)
	}
	if *verbose {
		d.Log(os.Stdout)
	}
	if err = d.Report(os.Stdout); err != nil {
		log.Fatal(err)
	}
	log.Printf("\n%v", d)

	if *dotFile != "" {
		if err = ioutil.WriteFile(*dotFile, []byte(d.Net().ToDot()), 0644); err != nil {
			log.Fatal(err)
		}
	}

	if wsEnc != nil {
		known := gtp.StandardLib()
		delete(known, "quit")
		in, out := gtp.New(d, conf.Name, "1", known).Start()
		mux := http.NewServeMux()
		mux.Handle("/ws", &server{enc: wsEnc, in: in, out: out})
		mux.Handle("/mjpeg", mjpegEnc)
		log.Printf("serving on %v", *serve)
		if err = http.ListenAndServe(*serve, mux); err != nil {
			log.Println(err)
		}
	}

	if gifEnc != nil {
		if err = gifEnc.Flush(); err != nil {
			log.Fatal(err)
		}
	}
	if *csvFile != "" {
		if err = d.Dump(*csvFile); err != nil {
			log.Fatal(err)
		}
	}
}
