package provision

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/satchelworks/satchelops/adapters/kube"
	"github.com/satchelworks/satchelops/adapters/store/inmem"
	"github.com/satchelworks/satchelops/domain/model"
	"github.com/satchelworks/satchelops/usecase/sshkey"
)

const (
	testNS    = "workspace-ns"
	testOwner = "owner-7f3d"
)

func testSettings() Settings {
	return Settings{
		Image:           "example.com/async-storage:test",
		ImagePullPolicy: corev1.PullIfNotPresent,
		PVCStrategy:     CommonPVCStrategy,
		PVCName:         "claim-satchel",
		PVCQuantity:     resource.MustParse("5Gi"),
		PVCAccessMode:   corev1.ReadWriteOnce,
	}
}

func newTestUseCase(objs ...runtime.Object) (*UseCase, *fake.Clientset, *inmem.SSHPairRepository) {
	cs := fake.NewSimpleClientset(objs...)
	repo := inmem.NewSSHPairRepository()
	u := &UseCase{
		Kube:     &kube.Client{Clientset: cs},
		Keys:     &sshkey.UseCase{Repo: repo},
		Settings: testSettings(),
	}
	return u, cs, repo
}

func testInput(attrs map[string]string) *ProvisionInput {
	return &ProvisionInput{
		Identity: &model.RuntimeIdentity{
			WorkspaceID: "workspace-a1b2c3",
			OwnerID:     testOwner,
			Namespace:   testNS,
		},
		Environment: &model.WorkspaceEnvironment{Attributes: attrs},
	}
}

func asyncAttrs() map[string]string {
	return map[string]string{
		model.AttrAsyncPersist:   "true",
		model.AttrPersistVolumes: "false",
	}
}

func countCreates(t *testing.T, cs *fake.Clientset) int {
	t.Helper()
	n := 0
	for _, a := range cs.Actions() {
		if a.GetVerb() == "create" {
			n++
		}
	}
	return n
}

// trapRepo fails the test on any store access.
type trapRepo struct{ t *testing.T }

func (r trapRepo) Create(context.Context, *model.SSHPair) error {
	r.t.Error("unexpected store call: Create")
	return nil
}

func (r trapRepo) List(context.Context, string, string) ([]*model.SSHPair, error) {
	r.t.Error("unexpected store call: List")
	return nil, nil
}

func (r trapRepo) Delete(context.Context, string, string, string) error {
	r.t.Error("unexpected store call: Delete")
	return nil
}

// brokenRepo simulates an unreachable store.
type brokenRepo struct{}

func (brokenRepo) Create(context.Context, *model.SSHPair) error { return fmt.Errorf("store offline") }
func (brokenRepo) List(context.Context, string, string) ([]*model.SSHPair, error) {
	return nil, fmt.Errorf("store offline")
}
func (brokenRepo) Delete(context.Context, string, string, string) error {
	return fmt.Errorf("store offline")
}

func TestProvision_SkipsWhenNotRequested(t *testing.T) {
	u, cs, _ := newTestUseCase()
	u.Keys.Repo = trapRepo{t}

	for _, attrs := range []map[string]string{
		nil,
		{model.AttrPersistVolumes: "false"},
		{model.AttrAsyncPersist: "false", model.AttrPersistVolumes: "false"},
	} {
		out, err := u.Provision(context.Background(), testInput(attrs))
		if err != nil {
			t.Fatalf("Provision() error = %v", err)
		}
		if !out.Skipped {
			t.Fatalf("Provision() Skipped = false for attrs %v", attrs)
		}
		if len(out.Created) != 0 {
			t.Fatalf("Provision() Created = %v, want none", out.Created)
		}
	}
	if got := len(cs.Actions()); got != 0 {
		t.Fatalf("cluster actions = %d, want 0", got)
	}
}

func TestProvision_RejectsStrategyMismatch(t *testing.T) {
	u, cs, _ := newTestUseCase()
	u.Settings.PVCStrategy = "perWorkspace"

	in := testInput(asyncAttrs())
	_, err := u.Provision(context.Background(), in)
	if !errors.Is(err, model.ErrWorkspaceConfigInvalid) {
		t.Fatalf("Provision() error = %v, want ErrWorkspaceConfigInvalid", err)
	}
	if len(in.Environment.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want exactly one", in.Environment.Warnings)
	}
	w := in.Environment.Warnings[0]
	if w.Code != WarningConfigIncompatible {
		t.Errorf("warning code = %d, want %d", w.Code, WarningConfigIncompatible)
	}
	if !strings.Contains(w.Message, "'common'") {
		t.Errorf("warning message = %q, want mention of the 'common' strategy", w.Message)
	}
	if got := len(cs.Actions()); got != 0 {
		t.Fatalf("cluster actions = %d, want 0", got)
	}
}

func TestProvision_RejectsPersistentVolumes(t *testing.T) {
	u, _, _ := newTestUseCase()

	in := testInput(map[string]string{model.AttrAsyncPersist: "true", model.AttrPersistVolumes: "true"})
	_, err := u.Provision(context.Background(), in)
	if !errors.Is(err, model.ErrWorkspaceConfigInvalid) {
		t.Fatalf("Provision() error = %v, want ErrWorkspaceConfigInvalid", err)
	}
	if len(in.Environment.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want exactly one", in.Environment.Warnings)
	}
	if got := in.Environment.Warnings[0].Message; got != reasonEphemeralMismatch {
		t.Errorf("warning message = %q, want %q", got, reasonEphemeralMismatch)
	}
}

func TestProvision_CreatesResourceSet(t *testing.T) {
	u, cs, repo := newTestUseCase()
	ctx := context.Background()

	out, err := u.Provision(ctx, testInput(asyncAttrs()))
	if err != nil {
		t.Fatalf("Provision() error = %v", err)
	}
	if out.Skipped {
		t.Fatal("Provision() Skipped = true, want false")
	}
	wantCreated := []string{
		"persistentvolumeclaim/claim-satchel",
		"configmap/" + ConfigName(testNS),
		"pod/" + StorageResourceName,
		"service/" + StorageResourceName,
	}
	if len(out.Created) != len(wantCreated) {
		t.Fatalf("Created = %v, want %v", out.Created, wantCreated)
	}
	for i, want := range wantCreated {
		if out.Created[i] != want {
			t.Fatalf("Created[%d] = %q, want %q", i, out.Created[i], want)
		}
	}

	pvc, err := cs.CoreV1().PersistentVolumeClaims(testNS).Get(ctx, "claim-satchel", metav1.GetOptions{})
	if err != nil {
		t.Fatalf("get claim: %v", err)
	}
	if len(pvc.Spec.AccessModes) != 1 || pvc.Spec.AccessModes[0] != corev1.ReadWriteOnce {
		t.Errorf("claim access modes = %v", pvc.Spec.AccessModes)
	}
	if q := pvc.Spec.Resources.Requests[corev1.ResourceStorage]; q.Cmp(resource.MustParse("5Gi")) != 0 {
		t.Errorf("claim storage = %s, want 5Gi", q.String())
	}
	if pvc.Spec.StorageClassName != nil {
		t.Errorf("claim storage class = %v, want default", *pvc.Spec.StorageClassName)
	}
	if got := pvc.Labels[kube.LabelOwnerID]; got != testOwner {
		t.Errorf("claim owner label = %q, want %q", got, testOwner)
	}

	pairs, err := repo.List(ctx, testOwner, sshkey.InternalScope)
	if err != nil {
		t.Fatalf("list pairs: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("stored pairs = %d, want 1", len(pairs))
	}
	cm, err := cs.CoreV1().ConfigMaps(testNS).Get(ctx, ConfigName(testNS), metav1.GetOptions{})
	if err != nil {
		t.Fatalf("get config map: %v", err)
	}
	if got := cm.Data[AuthorizedKeysKey]; got != pairs[0].PublicKey+"\n" {
		t.Errorf("authorized_keys = %q, want stored public key with trailing newline", got)
	}
	if !strings.HasPrefix(cm.Data[AuthorizedKeysKey], "ssh-rsa ") {
		t.Errorf("authorized_keys = %q, want ssh-rsa entry", cm.Data[AuthorizedKeysKey])
	}

	pod, err := cs.CoreV1().Pods(testNS).Get(ctx, StorageResourceName, metav1.GetOptions{})
	if err != nil {
		t.Fatalf("get pod: %v", err)
	}
	if len(pod.Spec.Containers) != 1 {
		t.Fatalf("containers = %d, want 1", len(pod.Spec.Containers))
	}
	c := pod.Spec.Containers[0]
	if !strings.HasPrefix(c.Name, containerNamePrefix+"-") {
		t.Errorf("container name = %q, want %q prefix with random suffix", c.Name, containerNamePrefix)
	}
	if c.Image != u.Settings.Image {
		t.Errorf("container image = %q, want %q", c.Image, u.Settings.Image)
	}
	if len(c.Ports) != 1 || c.Ports[0].ContainerPort != SyncPort || c.Ports[0].Name != SyncPortName {
		t.Errorf("container ports = %v", c.Ports)
	}
	if q := c.Resources.Requests[corev1.ResourceMemory]; q.Cmp(resource.MustParse(memoryRequest)) != 0 {
		t.Errorf("memory request = %s, want %s", q.String(), memoryRequest)
	}
	if q := c.Resources.Limits[corev1.ResourceMemory]; q.Cmp(resource.MustParse(memoryLimit)) != 0 {
		t.Errorf("memory limit = %s, want %s", q.String(), memoryLimit)
	}
	var dataMount, keyMount *corev1.VolumeMount
	for i := range c.VolumeMounts {
		switch c.VolumeMounts[i].MountPath {
		case DataMountPath:
			dataMount = &c.VolumeMounts[i]
		case AuthorizedKeysMountPath:
			keyMount = &c.VolumeMounts[i]
		}
	}
	if dataMount == nil || dataMount.ReadOnly {
		t.Errorf("data mount = %+v, want writable mount at %s", dataMount, DataMountPath)
	}
	if keyMount == nil || !keyMount.ReadOnly || keyMount.SubPath != AuthorizedKeysKey {
		t.Errorf("key mount = %+v, want read-only subPath %q", keyMount, AuthorizedKeysKey)
	}
	var claimVol, cfgVol *corev1.Volume
	for i := range pod.Spec.Volumes {
		v := &pod.Spec.Volumes[i]
		if v.PersistentVolumeClaim != nil {
			claimVol = v
		}
		if v.ConfigMap != nil {
			cfgVol = v
		}
	}
	if claimVol == nil || claimVol.PersistentVolumeClaim.ClaimName != "claim-satchel" {
		t.Errorf("claim volume = %+v", claimVol)
	}
	if cfgVol == nil || cfgVol.ConfigMap.Name != ConfigName(testNS) {
		t.Fatalf("config volume = %+v", cfgVol)
	}
	if cfgVol.ConfigMap.DefaultMode == nil || *cfgVol.ConfigMap.DefaultMode != 0600 {
		t.Errorf("config volume mode = %v, want 0600", cfgVol.ConfigMap.DefaultMode)
	}

	svc, err := cs.CoreV1().Services(testNS).Get(ctx, StorageResourceName, metav1.GetOptions{})
	if err != nil {
		t.Fatalf("get service: %v", err)
	}
	if got := svc.Spec.Selector[kube.LabelAppSelector]; got != StorageResourceName {
		t.Errorf("service selector = %v", svc.Spec.Selector)
	}
	if len(svc.Spec.Ports) != 1 || svc.Spec.Ports[0].Port != SyncPort ||
		svc.Spec.Ports[0].TargetPort.IntValue() != SyncPort {
		t.Errorf("service ports = %v", svc.Spec.Ports)
	}
}

func TestProvision_SecondRunCreatesNothing(t *testing.T) {
	u, cs, _ := newTestUseCase()
	ctx := context.Background()

	if _, err := u.Provision(ctx, testInput(asyncAttrs())); err != nil {
		t.Fatalf("first Provision() error = %v", err)
	}
	cs.ClearActions()

	out, err := u.Provision(ctx, testInput(asyncAttrs()))
	if err != nil {
		t.Fatalf("second Provision() error = %v", err)
	}
	if len(out.Created) != 0 {
		t.Fatalf("second Provision() Created = %v, want none", out.Created)
	}
	if got := countCreates(t, cs); got != 0 {
		t.Fatalf("second run create actions = %d, want 0", got)
	}
}

func TestProvision_ReusesExistingKeyPair(t *testing.T) {
	u, cs, repo := newTestUseCase()
	ctx := context.Background()

	seeded := &model.SSHPair{
		OwnerID:   testOwner,
		Scope:     sshkey.InternalScope,
		Name:      "pre-existing",
		PublicKey: "ssh-rsa AAAAB3NzaSEED seeded@test",
	}
	if err := repo.Create(ctx, seeded); err != nil {
		t.Fatalf("seed pair: %v", err)
	}

	if _, err := u.Provision(ctx, testInput(asyncAttrs())); err != nil {
		t.Fatalf("Provision() error = %v", err)
	}
	cm, err := cs.CoreV1().ConfigMaps(testNS).Get(ctx, ConfigName(testNS), metav1.GetOptions{})
	if err != nil {
		t.Fatalf("get config map: %v", err)
	}
	if got := cm.Data[AuthorizedKeysKey]; got != seeded.PublicKey+"\n" {
		t.Errorf("authorized_keys = %q, want seeded key", got)
	}
	pairs, err := repo.List(ctx, testOwner, sshkey.InternalScope)
	if err != nil {
		t.Fatalf("list pairs: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("stored pairs = %d, want the seeded one only", len(pairs))
	}
}

func TestProvision_TrustsExistingConfigMap(t *testing.T) {
	stale := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: ConfigName(testNS), Namespace: testNS},
		Data:       map[string]string{AuthorizedKeysKey: "ssh-rsa OLD old@host\n"},
	}
	u, cs, repo := newTestUseCase(stale)
	ctx := context.Background()

	out, err := u.Provision(ctx, testInput(asyncAttrs()))
	if err != nil {
		t.Fatalf("Provision() error = %v", err)
	}
	for _, created := range out.Created {
		if strings.HasPrefix(created, "configmap/") {
			t.Fatalf("Created = %v, config map should have been left alone", out.Created)
		}
	}
	cm, err := cs.CoreV1().ConfigMaps(testNS).Get(ctx, ConfigName(testNS), metav1.GetOptions{})
	if err != nil {
		t.Fatalf("get config map: %v", err)
	}
	if got := cm.Data[AuthorizedKeysKey]; got != "ssh-rsa OLD old@host\n" {
		t.Errorf("authorized_keys = %q, existing content must survive", got)
	}
	pairs, err := repo.List(ctx, testOwner, sshkey.InternalScope)
	if err != nil {
		t.Fatalf("list pairs: %v", err)
	}
	if len(pairs) != 0 {
		t.Fatalf("stored pairs = %d, want 0 when config map already exists", len(pairs))
	}
}

func TestProvision_SSHFailureAddsWarning(t *testing.T) {
	u, cs, _ := newTestUseCase()
	u.Keys.Repo = brokenRepo{}

	in := testInput(asyncAttrs())
	_, err := u.Provision(context.Background(), in)
	if !errors.Is(err, model.ErrSSHProvisionFailed) {
		t.Fatalf("Provision() error = %v, want ErrSSHProvisionFailed", err)
	}
	if len(in.Environment.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want exactly one", in.Environment.Warnings)
	}
	w := in.Environment.Warnings[0]
	if w.Code != WarningSSHKeysUnavailable {
		t.Errorf("warning code = %d, want %d", w.Code, WarningSSHKeysUnavailable)
	}
	if !strings.HasPrefix(w.Message, "Not able to provision SSH keys. Cause: ") {
		t.Errorf("warning message = %q", w.Message)
	}
	// The claim step precedes key provisioning, so exactly one create lands.
	if got := countCreates(t, cs); got != 1 {
		t.Fatalf("create actions = %d, want 1", got)
	}
}

func TestProvision_DryRunRendersManifest(t *testing.T) {
	u, cs, repo := newTestUseCase()
	ctx := context.Background()

	in := testInput(asyncAttrs())
	in.DryRun = true
	out, err := u.Provision(ctx, in)
	if err != nil {
		t.Fatalf("Provision() error = %v", err)
	}
	if out.Skipped || len(out.Created) != 0 {
		t.Fatalf("dry run output = %+v, want manifest only", out)
	}
	for _, want := range []string{
		"kind: PersistentVolumeClaim",
		"kind: ConfigMap",
		"kind: Pod",
		"kind: Service",
		AuthorizedKeysKey,
		ConfigName(testNS),
	} {
		if !strings.Contains(out.Manifest, want) {
			t.Errorf("manifest missing %q", want)
		}
	}
	if got := len(cs.Actions()); got != 0 {
		t.Fatalf("cluster actions = %d, want 0 on dry run", got)
	}
	// Key material is still resolved through the store so a later real run
	// renders the same config map.
	pairs, err := repo.List(ctx, testOwner, sshkey.InternalScope)
	if err != nil {
		t.Fatalf("list pairs: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("stored pairs = %d, want 1", len(pairs))
	}
}

func TestProvision_EnsuresNamespaceWhenConfigured(t *testing.T) {
	u, cs, _ := newTestUseCase()
	u.Settings.EnsureNamespace = true
	ctx := context.Background()

	if _, err := u.Provision(ctx, testInput(asyncAttrs())); err != nil {
		t.Fatalf("Provision() error = %v", err)
	}
	if _, err := cs.CoreV1().Namespaces().Get(ctx, testNS, metav1.GetOptions{}); err != nil {
		t.Fatalf("get namespace: %v", err)
	}
}

func TestProvision_InputValidation(t *testing.T) {
	cases := []struct {
		name string
		in   *ProvisionInput
	}{
		{name: "nil input", in: nil},
		{name: "nil identity", in: &ProvisionInput{Environment: &model.WorkspaceEnvironment{}}},
		{
			name: "nil environment",
			in: &ProvisionInput{
				Identity: &model.RuntimeIdentity{WorkspaceID: "w", OwnerID: "o", Namespace: testNS},
			},
		},
		{
			name: "invalid namespace",
			in: func() *ProvisionInput {
				in := testInput(asyncAttrs())
				in.Identity.Namespace = "Invalid_NS"
				return in
			}(),
		},
		{
			name: "missing owner",
			in: func() *ProvisionInput {
				in := testInput(asyncAttrs())
				in.Identity.OwnerID = ""
				return in
			}(),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u, cs, _ := newTestUseCase()
			if _, err := u.Provision(context.Background(), tc.in); err == nil {
				t.Fatal("Provision() error = nil, want error")
			}
			if got := len(cs.Actions()); got != 0 {
				t.Fatalf("cluster actions = %d, want 0", got)
			}
		})
	}
}

func TestStatus(t *testing.T) {
	u, cs, _ := newTestUseCase()
	ctx := context.Background()
	in := &StatusInput{Identity: &model.RuntimeIdentity{OwnerID: testOwner, Namespace: testNS}}

	out, err := u.Status(ctx, in)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if out.Claim.Exists || out.ConfigMap.Exists || out.Pod.Exists || out.Service.Exists || out.Ready {
		t.Fatalf("Status() on empty namespace = %+v", out)
	}

	if _, err := u.Provision(ctx, testInput(asyncAttrs())); err != nil {
		t.Fatalf("Provision() error = %v", err)
	}
	out, err = u.Status(ctx, in)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if !out.Claim.Exists || !out.ConfigMap.Exists || !out.Pod.Exists || !out.Service.Exists {
		t.Fatalf("Status() after provision = %+v, want all resources present", out)
	}
	if out.Ready {
		t.Fatal("Status() Ready = true before the pod runs")
	}

	pod, err := cs.CoreV1().Pods(testNS).Get(ctx, StorageResourceName, metav1.GetOptions{})
	if err != nil {
		t.Fatalf("get pod: %v", err)
	}
	pod.Status.Phase = corev1.PodRunning
	if _, err := cs.CoreV1().Pods(testNS).UpdateStatus(ctx, pod, metav1.UpdateOptions{}); err != nil {
		t.Fatalf("update pod status: %v", err)
	}
	out, err = u.Status(ctx, in)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if !out.Ready || out.PodPhase != string(corev1.PodRunning) {
		t.Fatalf("Status() = %+v, want ready running pod", out)
	}
}

func TestDeprovision_InputValidation(t *testing.T) {
	u, _, _ := newTestUseCase()
	cases := []struct {
		name string
		in   *DeprovisionInput
	}{
		{name: "nil input", in: nil},
		{name: "nil identity", in: &DeprovisionInput{}},
		{
			name: "invalid namespace",
			in:   &DeprovisionInput{Identity: &model.RuntimeIdentity{OwnerID: testOwner, Namespace: "Invalid_NS"}},
		},
		{
			name: "missing owner",
			in:   &DeprovisionInput{Identity: &model.RuntimeIdentity{Namespace: testNS}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := u.Deprovision(context.Background(), tc.in); err == nil {
				t.Fatal("Deprovision() error = nil, want error")
			}
		})
	}
}
