/*
 * Copyright 2023 The SVMKit Authors.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

/*
Classify a dataset with a trained model.

Usage example:

	predict \
		--model=/path/to/model.svm \
		--dataset=/path/to/test.libsvm \
		--output=/path/to/predictions.txt \
		--labeled \
		--threads=4

The dataset is read in LIBSVM format. One decision value per sample is
written to the output file, in input order. With --labeled, the dataset's
labels are used to report the accuracy of sign(decision value).
*/
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/svmkit/svmkit/dataset"
	"github.com/svmkit/svmkit/model"
	modelio "github.com/svmkit/svmkit/model/io"
	"github.com/svmkit/svmkit/serving"
)

var flagModel = flag.String("model", "", "Path to the model file")
var flagDataset = flag.String("dataset", "", "Path to the dataset in LIBSVM format")
var flagOutput = flag.String("output", "", "Path to the prediction output file")
var flagLabeled = flag.Bool("labeled", false, "Whether the dataset carries labels; if so, accuracy is reported")
var flagThreads = flag.Int("threads", 0, "Number of prediction workers. <=0 means one per available CPU.")

// Run classifies a dataset and writes the predictions. The progress is
// printed on the standard output.
func Run(modelPath string, datasetPath string, outputPath string, params *model.PredictParameters) error {
	// Load the model.
	fmt.Println("Load model")
	m, err := modelio.LoadModel(modelPath)
	if err != nil {
		return err
	}
	fmt.Printf("\tFound %v model with %d support vectors, maxdim %d\n",
		m.KernelType, m.NumSupportVectors(), m.SupportVectors.MaxDim())

	// Compile the model.
	engine, err := serving.NewEngine(m, params)
	if err != nil {
		return err
	}

	// Load the dataset.
	fmt.Println("Load dataset")
	var ds *dataset.Dataset
	if params.Labeled {
		ds, err = dataset.ReadLabeledFile(datasetPath)
	} else {
		ds, err = dataset.ReadUnlabeledFile(datasetPath)
	}
	if err != nil {
		return err
	}
	fmt.Printf("\t%d samples, %d features\n", ds.Count(), ds.NumFeatures())

	// Predict.
	fmt.Println("Predict")
	predictions := make([]float64, ds.Count())
	start := time.Now()
	if err := engine.Predict(ds, predictions); err != nil {
		return err
	}
	fmt.Printf("\t%v per sample\n", time.Since(start)/time.Duration(ds.Count()))

	if params.Labeled {
		correct := 0
		for i, p := range predictions {
			if (p >= 0) == (ds.Target(i) >= 0) {
				correct++
			}
		}
		fmt.Printf("\taccuracy: %.4f (%d/%d)\n",
			float64(correct)/float64(ds.Count()), correct, ds.Count())
	}

	// Write the predictions.
	fmt.Println("Write predictions")
	return serving.WritePredictions(outputPath, predictions)
}

func main() {
	flag.Parse()

	params := &model.PredictParameters{
		Labeled: *flagLabeled,
		Threads: *flagThreads}
	if err := Run(*flagModel, *flagDataset, *flagOutput, params); err != nil {
		log.Fatal(err)
	}
}
