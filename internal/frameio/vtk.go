package frameio

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dkastner/minerva/internal/world"
)

// VTKWriter emits one VTU (VTK XML unstructured grid) file per frame per
// body kind, plus a PVD collection index on Finalize so ParaView can load
// the whole run as a single time series.
type VTKWriter struct {
	cfg         Config
	initialized bool
	rbFrames    []int
	mdFrames    []int
}

// NewVTKWriter constructs a VTK/VTU frame writer.
func NewVTKWriter(cfg Config) *VTKWriter {
	return &VTKWriter{cfg: cfg}
}

func (v *VTKWriter) ensureOutputDir() error {
	if v.initialized {
		return nil
	}
	if err := os.MkdirAll(v.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("frameio: create output dir: %w", err)
	}
	v.initialized = true
	return nil
}

// Write emits the configured body kinds for one frame, skipping a body kind
// entirely empty of data.
func (v *VTKWriter) Write(w *world.World, frame int) error {
	if err := v.ensureOutputDir(); err != nil {
		return err
	}
	if v.cfg.WriteRigidBodies && len(w.RigidBodies) > 0 {
		if err := v.writeRigidBodies(w, frame); err != nil {
			return err
		}
		v.rbFrames = append(v.rbFrames, frame)
	}
	if v.cfg.WriteMDParticles && w.MDParticles != nil && w.MDParticles.Len() > 0 {
		if err := v.writeMDParticles(w, frame); err != nil {
			return err
		}
		v.mdFrames = append(v.mdFrames, frame)
	}
	return nil
}

func (v *VTKWriter) writeRigidBodies(w *world.World, frame int) error {
	path := filepath.Join(v.cfg.OutputDir, fmt.Sprintf("%s_rb_%06d.vtu", v.cfg.Prefix, frame))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("frameio: create %s: %w", path, err)
	}
	defer f.Close()

	n := len(w.RigidBodies)
	out := bufio.NewWriter(f)
	defer out.Flush()

	fmt.Fprint(out, "<?xml version=\"1.0\"?>\n")
	fmt.Fprint(out, "<VTKFile type=\"UnstructuredGrid\" version=\"0.1\" byte_order=\"LittleEndian\">\n")
	fmt.Fprint(out, "  <UnstructuredGrid>\n")
	fmt.Fprintf(out, "    <Piece NumberOfPoints=\"%d\" NumberOfCells=\"%d\">\n", n, n)

	fmt.Fprint(out, "      <Points>\n")
	fmt.Fprint(out, "        <DataArray type=\"Float32\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for _, rb := range w.RigidBodies {
		fmt.Fprintf(out, "          %g %g %g\n", rb.Position.X, rb.Position.Y, rb.Position.Z)
	}
	fmt.Fprint(out, "        </DataArray>\n")
	fmt.Fprint(out, "      </Points>\n")

	fmt.Fprint(out, "      <Cells>\n")
	fmt.Fprint(out, "        <DataArray type=\"Int32\" Name=\"connectivity\" format=\"ascii\">\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(out, "          %d\n", i)
	}
	fmt.Fprint(out, "        </DataArray>\n")
	fmt.Fprint(out, "        <DataArray type=\"Int32\" Name=\"offsets\" format=\"ascii\">\n")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(out, "          %d\n", i)
	}
	fmt.Fprint(out, "        </DataArray>\n")
	fmt.Fprint(out, "        <DataArray type=\"UInt8\" Name=\"types\" format=\"ascii\">\n")
	for i := 0; i < n; i++ {
		fmt.Fprint(out, "          1\n")
	}
	fmt.Fprint(out, "        </DataArray>\n")
	fmt.Fprint(out, "      </Cells>\n")

	fmt.Fprint(out, "      <PointData Vectors=\"velocity\" Scalars=\"mass\">\n")
	fmt.Fprint(out, "        <DataArray type=\"Float32\" Name=\"velocity\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for _, rb := range w.RigidBodies {
		fmt.Fprintf(out, "          %g %g %g\n", rb.Velocity.X, rb.Velocity.Y, rb.Velocity.Z)
	}
	fmt.Fprint(out, "        </DataArray>\n")
	fmt.Fprint(out, "        <DataArray type=\"Float32\" Name=\"mass\" format=\"ascii\">\n")
	for _, rb := range w.RigidBodies {
		fmt.Fprintf(out, "          %g\n", rb.Mass)
	}
	fmt.Fprint(out, "        </DataArray>\n")
	fmt.Fprint(out, "        <DataArray type=\"Float32\" Name=\"radius\" format=\"ascii\">\n")
	for _, rb := range w.RigidBodies {
		fmt.Fprintf(out, "          %g\n", rb.Radius)
	}
	fmt.Fprint(out, "        </DataArray>\n")
	fmt.Fprint(out, "        <DataArray type=\"Int32\" Name=\"kinematic\" format=\"ascii\">\n")
	for _, rb := range w.RigidBodies {
		k := 0
		if rb.Kinematic {
			k = 1
		}
		fmt.Fprintf(out, "          %d\n", k)
	}
	fmt.Fprint(out, "        </DataArray>\n")
	fmt.Fprint(out, "      </PointData>\n")
	fmt.Fprint(out, "    </Piece>\n")
	fmt.Fprint(out, "  </UnstructuredGrid>\n")
	fmt.Fprint(out, "</VTKFile>\n")

	return nil
}

func (v *VTKWriter) writeMDParticles(w *world.World, frame int) error {
	path := filepath.Join(v.cfg.OutputDir, fmt.Sprintf("%s_md_%06d.vtu", v.cfg.Prefix, frame))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("frameio: create %s: %w", path, err)
	}
	defer f.Close()

	n := w.MDParticles.Len()
	out := bufio.NewWriter(f)
	defer out.Flush()

	fmt.Fprint(out, "<?xml version=\"1.0\"?>\n")
	fmt.Fprint(out, "<VTKFile type=\"UnstructuredGrid\" version=\"0.1\" byte_order=\"LittleEndian\">\n")
	fmt.Fprint(out, "  <UnstructuredGrid>\n")
	fmt.Fprintf(out, "    <Piece NumberOfPoints=\"%d\" NumberOfCells=\"%d\">\n", n, n)

	fmt.Fprint(out, "      <Points>\n")
	fmt.Fprint(out, "        <DataArray type=\"Float32\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for _, p := range w.MDParticles.Data {
		fmt.Fprintf(out, "          %g %g %g\n", p.Position.X, p.Position.Y, p.Position.Z)
	}
	fmt.Fprint(out, "        </DataArray>\n")
	fmt.Fprint(out, "      </Points>\n")

	fmt.Fprint(out, "      <Cells>\n")
	fmt.Fprint(out, "        <DataArray type=\"Int32\" Name=\"connectivity\" format=\"ascii\">\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(out, "          %d\n", i)
	}
	fmt.Fprint(out, "        </DataArray>\n")
	fmt.Fprint(out, "        <DataArray type=\"Int32\" Name=\"offsets\" format=\"ascii\">\n")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(out, "          %d\n", i)
	}
	fmt.Fprint(out, "        </DataArray>\n")
	fmt.Fprint(out, "        <DataArray type=\"UInt8\" Name=\"types\" format=\"ascii\">\n")
	for i := 0; i < n; i++ {
		fmt.Fprint(out, "          1\n")
	}
	fmt.Fprint(out, "        </DataArray>\n")
	fmt.Fprint(out, "      </Cells>\n")

	fmt.Fprint(out, "      <PointData Vectors=\"velocity\" Scalars=\"mass\">\n")
	fmt.Fprint(out, "        <DataArray type=\"Float32\" Name=\"velocity\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for _, p := range w.MDParticles.Data {
		fmt.Fprintf(out, "          %g %g %g\n", p.Velocity.X, p.Velocity.Y, p.Velocity.Z)
	}
	fmt.Fprint(out, "        </DataArray>\n")
	fmt.Fprint(out, "        <DataArray type=\"Float32\" Name=\"mass\" format=\"ascii\">\n")
	for _, p := range w.MDParticles.Data {
		fmt.Fprintf(out, "          %g\n", p.Mass)
	}
	fmt.Fprint(out, "        </DataArray>\n")
	fmt.Fprint(out, "      </PointData>\n")
	fmt.Fprint(out, "    </Piece>\n")
	fmt.Fprint(out, "  </UnstructuredGrid>\n")
	fmt.Fprint(out, "</VTKFile>\n")

	return nil
}

// Finalize writes the .pvd collection index for each body kind that
// produced at least one frame, so ParaView can open the whole run as a
// time series.
func (v *VTKWriter) Finalize() error {
	if !v.initialized {
		return nil
	}
	if err := v.writeCollection("rb", v.rbFrames); err != nil {
		return err
	}
	if err := v.writeCollection("md", v.mdFrames); err != nil {
		return err
	}
	return nil
}

func (v *VTKWriter) writeCollection(kind string, frames []int) error {
	if len(frames) == 0 {
		return nil
	}
	path := filepath.Join(v.cfg.OutputDir, fmt.Sprintf("%s_%s.pvd", v.cfg.Prefix, kind))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("frameio: create %s: %w", path, err)
	}
	defer f.Close()

	out := bufio.NewWriter(f)
	defer out.Flush()

	fmt.Fprint(out, "<?xml version=\"1.0\"?>\n")
	fmt.Fprint(out, "<VTKFile type=\"Collection\" version=\"0.1\" byte_order=\"LittleEndian\">\n")
	fmt.Fprint(out, "  <Collection>\n")
	for _, frame := range frames {
		fmt.Fprintf(out, "    <DataSet timestep=\"%d\" file=\"%s_%s_%06d.vtu\"/>\n", frame, v.cfg.Prefix, kind, frame)
	}
	fmt.Fprint(out, "  </Collection>\n")
	fmt.Fprint(out, "</VTKFile>\n")
	return nil
}
