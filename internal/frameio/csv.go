package frameio

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dkastner/minerva/internal/world"
)

// CSVWriter writes one CSV file per frame per body kind, each row a single
// body's full state.
type CSVWriter struct {
	cfg         Config
	initialized bool
}

// NewCSVWriter constructs a CSV frame writer.
func NewCSVWriter(cfg Config) *CSVWriter {
	return &CSVWriter{cfg: cfg}
}

func (c *CSVWriter) ensureOutputDir() error {
	if c.initialized {
		return nil
	}
	if err := os.MkdirAll(c.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("frameio: create output dir: %w", err)
	}
	c.initialized = true
	return nil
}

// Write emits the configured body kinds for one frame.
func (c *CSVWriter) Write(w *world.World, frame int) error {
	if err := c.ensureOutputDir(); err != nil {
		return err
	}
	if c.cfg.WriteRigidBodies {
		if err := c.writeRigidBodies(w, frame); err != nil {
			return err
		}
	}
	if c.cfg.WriteMDParticles {
		if err := c.writeMDParticles(w, frame); err != nil {
			return err
		}
	}
	return nil
}

// Finalize is a no-op for CSV output; there is no collection index to flush.
func (c *CSVWriter) Finalize() error { return nil }

func (c *CSVWriter) writeRigidBodies(w *world.World, frame int) error {
	path := filepath.Join(c.cfg.OutputDir, fmt.Sprintf("%s_rb_%06d.csv", c.cfg.Prefix, frame))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("frameio: create %s: %w", path, err)
	}
	defer f.Close()

	out := csv.NewWriter(f)
	defer out.Flush()

	if err := out.Write([]string{"id", "x", "y", "z", "vx", "vy", "vz", "mass", "radius", "kinematic"}); err != nil {
		return err
	}
	for i, rb := range w.RigidBodies {
		kinematic := "0"
		if rb.Kinematic {
			kinematic = "1"
		}
		row := []string{
			strconv.Itoa(i),
			formatFloat(rb.Position.X), formatFloat(rb.Position.Y), formatFloat(rb.Position.Z),
			formatFloat(rb.Velocity.X), formatFloat(rb.Velocity.Y), formatFloat(rb.Velocity.Z),
			formatFloat(rb.Mass), formatFloat(rb.Radius), kinematic,
		}
		if err := out.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (c *CSVWriter) writeMDParticles(w *world.World, frame int) error {
	path := filepath.Join(c.cfg.OutputDir, fmt.Sprintf("%s_md_%06d.csv", c.cfg.Prefix, frame))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("frameio: create %s: %w", path, err)
	}
	defer f.Close()

	out := csv.NewWriter(f)
	defer out.Flush()

	if err := out.Write([]string{"id", "x", "y", "z", "vx", "vy", "vz", "mass"}); err != nil {
		return err
	}
	for i, p := range w.MDParticles.Data {
		row := []string{
			strconv.Itoa(i),
			formatFloat(p.Position.X), formatFloat(p.Position.Y), formatFloat(p.Position.Z),
			formatFloat(p.Velocity.X), formatFloat(p.Velocity.Y), formatFloat(p.Velocity.Z),
			formatFloat(p.Mass),
		}
		if err := out.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
